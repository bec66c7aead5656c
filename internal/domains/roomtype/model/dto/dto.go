package dto

import (
	"stay/internal/domains/roomtype/model"
	"stay/shared"
	gDto "stay/shared/dto"

	"github.com/shopspring/decimal"
)

type RoomTypeResponse struct {
	ID           string          `json:"id"`
	PropertyID   string          `json:"property_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	NightlyRate  decimal.Decimal `json:"nightly_rate"`
	MaxAdults    int             `json:"max_adults"`
	MaxChildren  int             `json:"max_children"`
	MaxOccupancy int             `json:"max_occupancy"`
	Active       bool            `json:"active"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.Name = model.Name
	r.Description = model.Description
	r.NightlyRate = model.NightlyRate
	r.MaxAdults = model.MaxAdults
	r.MaxChildren = model.MaxChildren
	r.MaxOccupancy = model.MaxOccupancy
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
