package dto

import (
	"time"

	"hospicore/internal/domains/drug/model"
	"hospicore/shared"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type CreateDrugRequest struct {
	Code             string  `json:"code"              validate:"required,max=50"`
	Name             string  `json:"name"              validate:"required,max=100"`
	Description      string  `json:"description"       validate:"omitempty"`
	UnitPrice        float64 `json:"unit_price"        validate:"gte=0"`
	QuantityOnHand   int     `json:"quantity_on_hand"  validate:"gte=0"`
	ReorderThreshold int     `json:"reorder_threshold" validate:"gte=0"`
	ExpiresAt        string  `json:"expires_at"        validate:"omitempty"`
	Supplier         string  `json:"supplier"          validate:"omitempty,max=100"`
}

func (c *CreateDrugRequest) ToModel(user string) (model.Drug, error) {
	var expiresAt *time.Time

	if c.ExpiresAt != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, c.ExpiresAt)
		if err != nil {
			return model.Drug{}, err //nolint:wrapcheck
		}

		expiresAt = &parsed
	}

	return model.Drug{
		ID:               uuid.NewString(),
		Code:             c.Code,
		Name:             c.Name,
		Description:      c.Description,
		UnitPrice:        c.UnitPrice,
		QuantityOnHand:   c.QuantityOnHand,
		ReorderThreshold: c.ReorderThreshold,
		ExpiresAt:        expiresAt,
		Supplier:         c.Supplier,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateDrugRequest struct {
	Name             string   `db:"name"              json:"name"              validate:"omitempty,max=100"`
	Description      string   `db:"description"       json:"description"       validate:"omitempty"`
	UnitPrice        *float64 `db:"unit_price"        json:"unit_price"        validate:"omitempty,gte=0"`
	QuantityOnHand   *int     `db:"quantity_on_hand"  json:"quantity_on_hand"  validate:"omitempty,gte=0"`
	ReorderThreshold *int     `db:"reorder_threshold" json:"reorder_threshold" validate:"omitempty,gte=0"`
	Supplier         string   `db:"supplier"          json:"supplier"          validate:"omitempty,max=100"`
}

type DrugResponse struct {
	ID               string  `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	UnitPrice        float64 `json:"unit_price"`
	QuantityOnHand   int     `json:"quantity_on_hand"`
	ReorderThreshold int     `json:"reorder_threshold"`
	LowStock         bool    `json:"low_stock"`
	ExpiresAt        string  `json:"expires_at,omitempty"`
	Supplier         string  `json:"supplier"`
	gDto.Metadata
}

func (r *DrugResponse) FromModel(mod model.Drug) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.Name = mod.Name
	r.Description = mod.Description
	r.UnitPrice = mod.UnitPrice
	r.QuantityOnHand = mod.QuantityOnHand
	r.ReorderThreshold = mod.ReorderThreshold
	r.LowStock = mod.LowStock()
	r.Supplier = mod.Supplier

	if mod.ExpiresAt != nil {
		r.ExpiresAt = timezone.Format(*mod.ExpiresAt, constant.DateOnlyFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetDrugsResponse struct {
	Drugs     []DrugResponse `json:"drugs"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetDrugsResponse) FromModels(models []model.Drug, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Drugs = make([]DrugResponse, len(models))
	for i, mod := range models {
		r.Drugs[i].FromModel(mod)
	}
}
