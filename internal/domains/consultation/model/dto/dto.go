package dto

import (
	"hospicore/internal/domains/consultation/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type CreateConsultationRequest struct {
	PatientID string `json:"patient_id" validate:"required,uuid4"`
	StaffID   string `json:"staff_id"   validate:"required,uuid4"`
	Diagnosis string `json:"diagnosis"  validate:"required"`
	Treatment string `json:"treatment"  validate:"omitempty"`
	OrderText string `json:"order_text" validate:"omitempty"`
	Notes     string `json:"notes"      validate:"omitempty"`
}

func (c *CreateConsultationRequest) ToModel(user string) model.Consultation {
	return model.Consultation{
		ID:         uuid.NewString(),
		PatientID:  c.PatientID,
		StaffID:    c.StaffID,
		OccurredAt: timezone.Now(),
		Diagnosis:  c.Diagnosis,
		Treatment:  c.Treatment,
		OrderText:  c.OrderText,
		Notes:      c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateConsultationRequest struct {
	Diagnosis string `db:"diagnosis"  json:"diagnosis"  validate:"omitempty"`
	Treatment string `db:"treatment"  json:"treatment"  validate:"omitempty"`
	OrderText string `db:"order_text" json:"order_text" validate:"omitempty"`
	Notes     string `db:"notes"      json:"notes"      validate:"omitempty"`
}

type ConsultationResponse struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	StaffID    string `json:"staff_id"`
	OccurredAt string `json:"occurred_at"`
	Diagnosis  string `json:"diagnosis"`
	Treatment  string `json:"treatment"`
	OrderText  string `json:"order_text"`
	Notes      string `json:"notes"`
	gDto.Metadata
}

func (r *ConsultationResponse) FromModel(mod model.Consultation) {
	r.ID = mod.ID
	r.PatientID = mod.PatientID
	r.StaffID = mod.StaffID
	r.OccurredAt = timezone.Format(mod.OccurredAt, constant.DateFormat)
	r.Diagnosis = mod.Diagnosis
	r.Treatment = mod.Treatment
	r.OrderText = mod.OrderText
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetConsultationsResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetConsultationsResponse) FromModels(models []model.Consultation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Consultations = make([]ConsultationResponse, len(models))
	for i, mod := range models {
		r.Consultations[i].FromModel(mod)
	}
}
