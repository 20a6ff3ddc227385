package model

import (
	"time"

	"hospicore/shared/model"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	LineTableName  = "invoice_lines"
	LineEntityName = "invoice_line"

	CounterTableName = "invoice_counters"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldPatientID   = "patient_id"
	FieldAdmissionID = "admission_id"
	FieldIssueDate   = "issue_date"
	FieldDueDate     = "due_date"
	FieldTotal       = "total"
	FieldPaid        = "paid"
	FieldStatus      = "status"
	FieldKind        = "kind"
	FieldNotes       = "notes"

	FieldLineInvoiceID = "invoice_id"
	FieldLinePosition  = "position"
)

const (
	StatusPending   = "pending"
	StatusPartial   = "partial"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

const (
	KindAdmission    = "admission"
	KindConsultation = "consultation"
	KindPharmacy     = "pharmacy"
)

const (
	LineCategoryRoom         = "room"
	LineCategoryConsultation = "consultation"
	LineCategoryDrug         = "drug"
	LineCategoryExam         = "exam"
)

type Invoice struct {
	ID          string     `db:"id"`
	Number      string     `db:"number"`
	PatientID   string     `db:"patient_id"`
	AdmissionID *string    `db:"admission_id"`
	IssueDate   time.Time  `db:"issue_date"`
	DueDate     *time.Time `db:"due_date"`
	Total       float64    `db:"total"`
	Paid        float64    `db:"paid"`
	Status      string     `db:"status"`
	Kind        string     `db:"kind"`
	Notes       string     `db:"notes"`
	model.Metadata
}

type InvoiceLine struct {
	ID          string  `db:"id"`
	InvoiceID   string  `db:"invoice_id"`
	Description string  `db:"description"`
	Quantity    int     `db:"quantity"`
	UnitPrice   float64 `db:"unit_price"`
	Amount      float64 `db:"amount"`
	Category    string  `db:"category"`
	Position    int     `db:"position"`
	model.Metadata
}

// DeriveStatus recomputes the payment status from the amounts. The status column is
// never written directly by payment handling.
func DeriveStatus(paid, total float64) string {
	switch {
	case paid <= 0:
		return StatusPending
	case paid >= total:
		return StatusPaid
	default:
		return StatusPartial
	}
}
