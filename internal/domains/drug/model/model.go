package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "drugs"
	EntityName = "drug"

	FieldID               = "id"
	FieldCode             = "code"
	FieldName             = "name"
	FieldDescription      = "description"
	FieldUnitPrice        = "unit_price"
	FieldQuantityOnHand   = "quantity_on_hand"
	FieldReorderThreshold = "reorder_threshold"
	FieldExpiresAt        = "expires_at"
	FieldSupplier         = "supplier"
)

type Drug struct {
	ID               string     `db:"id"`
	Code             string     `db:"code"`
	Name             string     `db:"name"`
	Description      string     `db:"description"`
	UnitPrice        float64    `db:"unit_price"`
	QuantityOnHand   int        `db:"quantity_on_hand"`
	ReorderThreshold int        `db:"reorder_threshold"`
	ExpiresAt        *time.Time `db:"expires_at"`
	Supplier         string     `db:"supplier"`
	model.Metadata
}

// LowStock reports whether the quantity on hand has fallen below the reorder threshold.
// Advisory only: it never blocks dispensing.
func (d *Drug) LowStock() bool {
	return d.QuantityOnHand < d.ReorderThreshold
}
