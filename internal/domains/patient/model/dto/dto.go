package dto

import (
	"hospicore/internal/domains/patient/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	LastName             string `json:"last_name"              validate:"required,max=100"`
	FirstName            string `json:"first_name"             validate:"required,max=100"`
	BirthDate            string `json:"birth_date"             validate:"required"`
	Phone                string `json:"phone"                  validate:"omitempty,max=20"`
	Email                string `json:"email"                  validate:"omitempty,email"`
	Address              string `json:"address"                validate:"omitempty"`
	SocialSecurityNumber string `json:"social_security_number" validate:"required,max=20"`
}

func (c *CreatePatientRequest) ToModel(user string) (model.Patient, error) {
	birthDate, err := timezone.Parse(constant.DateOnlyFormat, c.BirthDate)
	if err != nil {
		return model.Patient{}, err //nolint:wrapcheck
	}

	return model.Patient{
		ID:                   uuid.NewString(),
		LastName:             c.LastName,
		FirstName:            c.FirstName,
		BirthDate:            birthDate,
		Phone:                c.Phone,
		Email:                c.Email,
		Address:              c.Address,
		SocialSecurityNumber: c.SocialSecurityNumber,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdatePatientRequest struct {
	LastName  string `db:"last_name"  json:"last_name"  validate:"omitempty,max=100"`
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email"`
	Address   string `db:"address"    json:"address"    validate:"omitempty"`
}

type PatientResponse struct {
	ID                   string `json:"id"`
	LastName             string `json:"last_name"`
	FirstName            string `json:"first_name"`
	BirthDate            string `json:"birth_date"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Address              string `json:"address"`
	SocialSecurityNumber string `json:"social_security_number"`
	gDto.Metadata
}

func (r *PatientResponse) FromModel(mod model.Patient) {
	r.ID = mod.ID
	r.LastName = mod.LastName
	r.FirstName = mod.FirstName
	r.BirthDate = timezone.Format(mod.BirthDate, constant.DateOnlyFormat)
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.Address = mod.Address
	r.SocialSecurityNumber = mod.SocialSecurityNumber
	r.Metadata.FromModel(mod.Metadata)
}

type GetPatientsResponse struct {
	Patients  []PatientResponse `json:"patients"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPatientsResponse) FromModels(models []model.Patient, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Patients = make([]PatientResponse, len(models))
	for i, mod := range models {
		r.Patients[i].FromModel(mod)
	}
}
