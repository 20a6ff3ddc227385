package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "consultations"
	EntityName = "consultation"

	FieldID         = "id"
	FieldPatientID  = "patient_id"
	FieldStaffID    = "staff_id"
	FieldOccurredAt = "occurred_at"
	FieldDiagnosis  = "diagnosis"
	FieldTreatment  = "treatment"
	FieldOrderText  = "order_text"
	FieldNotes      = "notes"
)

type Consultation struct {
	ID         string    `db:"id"`
	PatientID  string    `db:"patient_id"`
	StaffID    string    `db:"staff_id"`
	OccurredAt time.Time `db:"occurred_at"`
	Diagnosis  string    `db:"diagnosis"`
	Treatment  string    `db:"treatment"`
	OrderText  string    `db:"order_text"`
	Notes      string    `db:"notes"`
	model.Metadata
}
