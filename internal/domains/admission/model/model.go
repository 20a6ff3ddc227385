package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "admissions"
	EntityName = "admission"

	FieldID           = "id"
	FieldPatientID    = "patient_id"
	FieldRoomID       = "room_id"
	FieldAdmittedAt   = "admitted_at"
	FieldDischargedAt = "discharged_at"
	FieldReason       = "reason"
	FieldStatus       = "status"
	FieldNotes        = "notes"
)

const (
	StatusAdmitted    = "admitted"
	StatusDischarged  = "discharged"
	StatusTransferred = "transferred"
)

type Admission struct {
	ID           string     `db:"id"`
	PatientID    string     `db:"patient_id"`
	RoomID       string     `db:"room_id"`
	AdmittedAt   time.Time  `db:"admitted_at"`
	DischargedAt *time.Time `db:"discharged_at"`
	Reason       string     `db:"reason"`
	Status       string     `db:"status"`
	Notes        string     `db:"notes"`
	model.Metadata
}
