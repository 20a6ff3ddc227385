package model

import "hospicore/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldCategory    = "category"
	FieldStatus      = "status"
	FieldNightlyRate = "nightly_rate"
)

const (
	StatusFree        = "free"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

const (
	CategorySingle = "single"
	CategoryDouble = "double"
	CategoryVIP    = "vip"
)

type Room struct {
	ID          string  `db:"id"`
	Number      string  `db:"number"`
	Category    string  `db:"category"`
	Status      string  `db:"status"`
	NightlyRate float64 `db:"nightly_rate"`
	model.Metadata
}
