package dto

import (
	"hospicore/internal/domains/staff/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	LastName  string `json:"last_name"  validate:"required,max=100"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	Specialty string `json:"specialty"  validate:"required,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
	Email     string `json:"email"      validate:"omitempty,email"`
	HiredAt   string `json:"hired_at"   validate:"required"`
}

func (c *CreateStaffRequest) ToModel(user string) (model.Staff, error) {
	hiredAt, err := timezone.Parse(constant.DateOnlyFormat, c.HiredAt)
	if err != nil {
		return model.Staff{}, err //nolint:wrapcheck
	}

	return model.Staff{
		ID:        uuid.NewString(),
		LastName:  c.LastName,
		FirstName: c.FirstName,
		Specialty: c.Specialty,
		Phone:     c.Phone,
		Email:     c.Email,
		HiredAt:   hiredAt,
		Status:    model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateStaffRequest struct {
	LastName  string `db:"last_name"  json:"last_name"  validate:"omitempty,max=100"`
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=100"`
	Specialty string `db:"specialty"  json:"specialty"  validate:"omitempty,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email"`
	Status    string `db:"status"     json:"status"     validate:"omitempty,oneof=active inactive"`
}

type StaffResponse struct {
	ID        string `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	HiredAt   string `json:"hired_at"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(mod model.Staff) {
	r.ID = mod.ID
	r.LastName = mod.LastName
	r.FirstName = mod.FirstName
	r.Specialty = mod.Specialty
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.HiredAt = timezone.Format(mod.HiredAt, constant.DateOnlyFormat)
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}
