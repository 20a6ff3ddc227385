package dto

import (
	"hospicore/internal/domains/prescription/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type CreatePrescriptionRequest struct {
	PatientID    string `json:"patient_id"    validate:"required,uuid4"`
	PrescriberID string `json:"prescriber_id" validate:"required,uuid4"`
	DrugID       string `json:"drug_id"       validate:"required,uuid4"`
	Quantity     int    `json:"quantity"      validate:"required,gte=1"`
	Dosage       string `json:"dosage"        validate:"required"`
	Notes        string `json:"notes"         validate:"omitempty"`
}

func (c *CreatePrescriptionRequest) ToModel(user string) model.Prescription {
	return model.Prescription{
		ID:           uuid.NewString(),
		PatientID:    c.PatientID,
		PrescriberID: c.PrescriberID,
		DrugID:       c.DrugID,
		Quantity:     c.Quantity,
		Dosage:       c.Dosage,
		PrescribedAt: timezone.Now(),
		Status:       model.StatusPending,
		Notes:        c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PrescriptionResponse struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id"`
	PrescriberID string `json:"prescriber_id"`
	DrugID       string `json:"drug_id"`
	Quantity     int    `json:"quantity"`
	Dosage       string `json:"dosage"`
	PrescribedAt string `json:"prescribed_at"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	gDto.Metadata
}

func (r *PrescriptionResponse) FromModel(mod model.Prescription) {
	r.ID = mod.ID
	r.PatientID = mod.PatientID
	r.PrescriberID = mod.PrescriberID
	r.DrugID = mod.DrugID
	r.Quantity = mod.Quantity
	r.Dosage = mod.Dosage
	r.PrescribedAt = timezone.Format(mod.PrescribedAt, constant.DateFormat)
	r.Status = mod.Status
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

// FulfillPrescriptionResponse reports the dispensing outcome together with the advisory
// low-stock signal for the drug that was drawn down.
type FulfillPrescriptionResponse struct {
	Prescription   PrescriptionResponse `json:"prescription"`
	QuantityOnHand int                  `json:"quantity_on_hand"`
	LowStock       bool                 `json:"low_stock"`
}

type GetPrescriptionsResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetPrescriptionsResponse) FromModels(models []model.Prescription, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Prescriptions = make([]PrescriptionResponse, len(models))
	for i, mod := range models {
		r.Prescriptions[i].FromModel(mod)
	}
}
