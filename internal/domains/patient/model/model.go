package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "patients"
	EntityName = "patient"

	FieldID                   = "id"
	FieldLastName             = "last_name"
	FieldFirstName            = "first_name"
	FieldBirthDate            = "birth_date"
	FieldPhone                = "phone"
	FieldEmail                = "email"
	FieldAddress              = "address"
	FieldSocialSecurityNumber = "social_security_number"
)

type Patient struct {
	ID                   string    `db:"id"`
	LastName             string    `db:"last_name"`
	FirstName            string    `db:"first_name"`
	BirthDate            time.Time `db:"birth_date"`
	Phone                string    `db:"phone"`
	Email                string    `db:"email"`
	Address              string    `db:"address"`
	SocialSecurityNumber string    `db:"social_security_number"`
	model.Metadata
}
