package dto

import (
	"time"

	"hospicore/internal/domains/invoice/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type InvoiceLineRequest struct {
	Description string  `json:"description" validate:"required,max=255"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Category    string  `json:"category"    validate:"required,oneof=room consultation drug exam"`
}

type CreateInvoiceRequest struct {
	PatientID   string               `json:"patient_id"   validate:"required,uuid4"`
	AdmissionID string               `json:"admission_id" validate:"omitempty,uuid4"`
	DueDate     string               `json:"due_date"     validate:"omitempty"`
	Kind        string               `json:"kind"         validate:"required,oneof=admission consultation pharmacy"`
	Notes       string               `json:"notes"        validate:"omitempty"`
	Lines       []InvoiceLineRequest `json:"lines"        validate:"required,min=1,dive"`
}

func (c *CreateInvoiceRequest) ToModel(user, number string) (model.Invoice, []model.InvoiceLine, error) {
	var (
		dueDate     *time.Time
		admissionID *string
	)

	if c.DueDate != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, c.DueDate)
		if err != nil {
			return model.Invoice{}, nil, err //nolint:wrapcheck
		}

		dueDate = &parsed
	}

	if c.AdmissionID != constant.Empty {
		admissionID = &c.AdmissionID
	}

	now := timezone.Now()
	meta := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}

	invoice := model.Invoice{
		ID:          uuid.NewString(),
		Number:      number,
		PatientID:   c.PatientID,
		AdmissionID: admissionID,
		IssueDate:   now,
		DueDate:     dueDate,
		Paid:        0,
		Status:      model.StatusPending,
		Kind:        c.Kind,
		Notes:       c.Notes,
		Metadata:    meta,
	}

	lines := make([]model.InvoiceLine, len(c.Lines))
	for i, line := range c.Lines {
		amount := float64(line.Quantity) * line.UnitPrice
		invoice.Total += amount

		lines[i] = model.InvoiceLine{
			ID:          uuid.NewString(),
			InvoiceID:   invoice.ID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      amount,
			Category:    line.Category,
			Position:    i + 1,
			Metadata:    meta,
		}
	}

	return invoice, lines, nil
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

type InvoiceLineResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Position    int     `json:"position"`
}

func (r *InvoiceLineResponse) FromModel(mod model.InvoiceLine) {
	r.ID = mod.ID
	r.Description = mod.Description
	r.Quantity = mod.Quantity
	r.UnitPrice = mod.UnitPrice
	r.Amount = mod.Amount
	r.Category = mod.Category
	r.Position = mod.Position
}

type InvoiceResponse struct {
	ID          string                `json:"id"`
	Number      string                `json:"number"`
	PatientID   string                `json:"patient_id"`
	AdmissionID string                `json:"admission_id,omitempty"`
	IssueDate   string                `json:"issue_date"`
	DueDate     string                `json:"due_date,omitempty"`
	Total       float64               `json:"total"`
	Paid        float64               `json:"paid"`
	Status      string                `json:"status"`
	Kind        string                `json:"kind"`
	Notes       string                `json:"notes"`
	Lines       []InvoiceLineResponse `json:"lines,omitempty"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(mod model.Invoice) {
	r.ID = mod.ID
	r.Number = mod.Number
	r.PatientID = mod.PatientID
	r.IssueDate = timezone.Format(mod.IssueDate, constant.DateFormat)
	r.Total = mod.Total
	r.Paid = mod.Paid
	r.Status = mod.Status
	r.Kind = mod.Kind
	r.Notes = mod.Notes

	if mod.AdmissionID != nil {
		r.AdmissionID = *mod.AdmissionID
	}

	if mod.DueDate != nil {
		r.DueDate = timezone.Format(*mod.DueDate, constant.DateOnlyFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

func (r *InvoiceResponse) WithLines(lines []model.InvoiceLine) {
	r.Lines = make([]InvoiceLineResponse, len(lines))
	for i, line := range lines {
		r.Lines[i].FromModel(line)
	}
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}
