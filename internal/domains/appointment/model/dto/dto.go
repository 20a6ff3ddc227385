package dto

import (
	"hospicore/internal/domains/appointment/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PatientID   string `json:"patient_id"   validate:"required,uuid4"`
	StaffID     string `json:"staff_id"     validate:"required,uuid4"`
	ScheduledAt string `json:"scheduled_at" validate:"required"`
	Type        string `json:"type"         validate:"required,max=100"`
	Notes       string `json:"notes"        validate:"omitempty"`
}

func (c *CreateAppointmentRequest) ToModel(user string) (model.Appointment, error) {
	scheduledAt, err := timezone.Parse(constant.DateFormat, c.ScheduledAt)
	if err != nil {
		return model.Appointment{}, err //nolint:wrapcheck
	}

	return model.Appointment{
		ID:          uuid.NewString(),
		PatientID:   c.PatientID,
		StaffID:     c.StaffID,
		ScheduledAt: scheduledAt,
		Type:        c.Type,
		Status:      model.StatusScheduled,
		Notes:       c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateAppointmentRequest struct {
	Type   string `db:"type"   json:"type"   validate:"omitempty,max=100"`
	Status string `db:"status" json:"status" validate:"omitempty,oneof=scheduled confirmed cancelled completed"`
	Notes  string `db:"notes"  json:"notes"  validate:"omitempty"`
}

type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	StaffID     string `json:"staff_id"`
	ScheduledAt string `json:"scheduled_at"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(mod model.Appointment) {
	r.ID = mod.ID
	r.PatientID = mod.PatientID
	r.StaffID = mod.StaffID
	r.ScheduledAt = timezone.Format(mod.ScheduledAt, constant.DateFormat)
	r.Type = mod.Type
	r.Status = mod.Status
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}
