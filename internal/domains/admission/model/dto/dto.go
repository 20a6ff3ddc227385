package dto

import (
	"hospicore/internal/domains/admission/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type AdmitPatientRequest struct {
	PatientID string `json:"patient_id" validate:"required,uuid4"`
	RoomID    string `json:"room_id"    validate:"required,uuid4"`
	Reason    string `json:"reason"     validate:"required"`
	Notes     string `json:"notes"      validate:"omitempty"`
}

func (a *AdmitPatientRequest) ToModel(user string) model.Admission {
	return model.Admission{
		ID:         uuid.NewString(),
		PatientID:  a.PatientID,
		RoomID:     a.RoomID,
		AdmittedAt: timezone.Now(),
		Reason:     a.Reason,
		Status:     model.StatusAdmitted,
		Notes:      a.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type AdmissionResponse struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id"`
	RoomID       string `json:"room_id"`
	AdmittedAt   string `json:"admitted_at"`
	DischargedAt string `json:"discharged_at,omitempty"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	gDto.Metadata
}

func (r *AdmissionResponse) FromModel(mod model.Admission) {
	r.ID = mod.ID
	r.PatientID = mod.PatientID
	r.RoomID = mod.RoomID
	r.AdmittedAt = timezone.Format(mod.AdmittedAt, constant.DateFormat)
	r.Reason = mod.Reason
	r.Status = mod.Status
	r.Notes = mod.Notes

	if mod.DischargedAt != nil {
		r.DischargedAt = timezone.Format(*mod.DischargedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetAdmissionsResponse struct {
	Admissions []AdmissionResponse `json:"admissions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetAdmissionsResponse) FromModels(models []model.Admission, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Admissions = make([]AdmissionResponse, len(models))
	for i, mod := range models {
		r.Admissions[i].FromModel(mod)
	}
}
