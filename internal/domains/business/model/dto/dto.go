package dto

import (
	"parkflow/internal/domains/fare"
	lotDto "parkflow/internal/domains/lot/model/dto"
	lotModel "parkflow/internal/domains/lot/model"
	userDto "parkflow/internal/domains/user/model/dto"
	userModel "parkflow/internal/domains/user/model"
	"parkflow/shared"
)

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected banned"`
}

type BusinessResponse struct {
	User userDto.UserResponse `json:"user"`
	Lot  *lotDto.LotResponse  `json:"lot"`
}

type GetBusinessesResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

// FromModels pairs every account with its lot, if it has one.
func (r *GetBusinessesResponse) FromModels(users []userModel.User, lots []lotModel.Lot, fallback fare.BillingMode, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	byOwner := make(map[string]lotModel.Lot, len(lots))
	for _, lot := range lots {
		byOwner[lot.OwnerID] = lot
	}

	r.Businesses = make([]BusinessResponse, len(users))
	for i, user := range users {
		r.Businesses[i].User.FromModel(user)

		if lot, ok := byOwner[user.ID]; ok {
			r.Businesses[i].Lot = &lotDto.LotResponse{}
			r.Businesses[i].Lot.FromModel(lot, fallback)
		}
	}
}

type CountsResponse struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Banned   int `json:"banned"`
	Total    int `json:"total"`
}
