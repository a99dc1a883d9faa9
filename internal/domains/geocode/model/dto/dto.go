package dto

import "parkflow/infras/geocode"

type ReverseRequest struct {
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lng" validate:"longitude"`
}

type ReverseResponse struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name"`
}

func (r *ReverseResponse) FromPlace(place geocode.Place) {
	r.Address = place.Short
	r.DisplayName = place.DisplayName
}
