package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID        = "id"
	FieldLastName  = "last_name"
	FieldFirstName = "first_name"
	FieldSpecialty = "specialty"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldHiredAt   = "hired_at"
	FieldStatus    = "status"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Staff struct {
	ID        string    `db:"id"`
	LastName  string    `db:"last_name"`
	FirstName string    `db:"first_name"`
	Specialty string    `db:"specialty"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	HiredAt   time.Time `db:"hired_at"`
	Status    string    `db:"status"`
	model.Metadata
}
