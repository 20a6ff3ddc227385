package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID          = "id"
	FieldPatientID   = "patient_id"
	FieldStaffID     = "staff_id"
	FieldScheduledAt = "scheduled_at"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type Appointment struct {
	ID          string    `db:"id"`
	PatientID   string    `db:"patient_id"`
	StaffID     string    `db:"staff_id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Type        string    `db:"type"`
	Status      string    `db:"status"`
	Notes       string    `db:"notes"`
	model.Metadata
}
