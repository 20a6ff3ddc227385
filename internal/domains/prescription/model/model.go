package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "prescriptions"
	EntityName = "prescription"

	FieldID           = "id"
	FieldPatientID    = "patient_id"
	FieldPrescriberID = "prescriber_id"
	FieldDrugID       = "drug_id"
	FieldQuantity     = "quantity"
	FieldDosage       = "dosage"
	FieldPrescribedAt = "prescribed_at"
	FieldStatus       = "status"
	FieldNotes        = "notes"
)

const (
	StatusPending   = "pending"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
)

type Prescription struct {
	ID           string    `db:"id"`
	PatientID    string    `db:"patient_id"`
	PrescriberID string    `db:"prescriber_id"`
	DrugID       string    `db:"drug_id"`
	Quantity     int       `db:"quantity"`
	Dosage       string    `db:"dosage"`
	PrescribedAt time.Time `db:"prescribed_at"`
	Status       string    `db:"status"`
	Notes        string    `db:"notes"`
	model.Metadata
}

// Terminal reports whether the prescription reached a final status. Fulfilled and
// cancelled prescriptions never transition again.
func (p *Prescription) Terminal() bool {
	return p.Status == StatusFulfilled || p.Status == StatusCancelled
}
