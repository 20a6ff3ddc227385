package dto

import (
	"hospicore/internal/domains/room/model"
	"hospicore/shared"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number      string  `json:"number"       validate:"required,max=10"`
	Category    string  `json:"category"     validate:"required,oneof=single double vip"`
	NightlyRate float64 `json:"nightly_rate" validate:"gte=0"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:          uuid.NewString(),
		Number:      c.Number,
		Category:    c.Category,
		Status:      model.StatusFree,
		NightlyRate: c.NightlyRate,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest carries the administratively editable fields. Status is absent on
// purpose: room status only changes through admission, discharge and the maintenance
// transition.
type UpdateRoomRequest struct {
	Number      string   `db:"number"       json:"number"       validate:"omitempty,max=10"`
	Category    string   `db:"category"     json:"category"     validate:"omitempty,oneof=single double vip"`
	NightlyRate *float64 `db:"nightly_rate" json:"nightly_rate" validate:"omitempty,gte=0"`
}

type ChangeRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=free maintenance"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	NightlyRate float64 `json:"nightly_rate"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Category = model.Category
	r.Status = model.Status
	r.NightlyRate = model.NightlyRate
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
