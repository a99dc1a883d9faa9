package model

import (
	"errors"
	"parkflow/internal/domains/fare"
	"parkflow/shared/model"

	"gopkg.in/guregu/null.v4"
)

const (
	TableName  = "parking_lots"
	EntityName = "parking_lot"

	FieldID                 = "id"
	FieldOwnerID            = "owner_id"
	FieldName               = "name"
	FieldAddress            = "address"
	FieldLatitude           = "latitude"
	FieldLongitude          = "longitude"
	FieldLicenseID          = "license_id"
	FieldProofDocURL        = "proof_doc_url"
	FieldPricePerHour       = "price_per_hour"
	FieldTotalCarSlots      = "total_car_slots"
	FieldAvailableCarSlots  = "available_car_slots"
	FieldTotalBikeSlots     = "total_bike_slots"
	FieldAvailableBikeSlots = "available_bike_slots"
	FieldMaxDurationHours   = "max_duration_hours"
	FieldFineAmount         = "fine_amount"
	FieldBillingMode        = "billing_mode"
	FieldIsAvailable        = "is_available"
)

// Cache keys. Anything that moves availability clears CachePrefix.
const (
	CachePrefix  = "lot:"
	CacheGet     = "lot:get"
	CacheGetAll  = "lot:gets"
	CacheCount   = "lot:count"
	CacheOwner   = "lot:owner"
	CacheRanking = "lot:available"
)

const (
	VehicleTypeCar  = "car"
	VehicleTypeBike = "bike"
)

var ErrLotNotFound = errors.New("parking lot not found")

type Lot struct {
	ID                 string      `db:"id"`
	OwnerID            string      `db:"owner_id"`
	Name               string      `db:"name"`
	Address            string      `db:"address"`
	Latitude           null.Float  `db:"latitude"`
	Longitude          null.Float  `db:"longitude"`
	LicenseID          string      `db:"license_id"`
	ProofDocURL        null.String `db:"proof_doc_url"`
	PricePerHour       float64     `db:"price_per_hour"`
	TotalCarSlots      int         `db:"total_car_slots"`
	AvailableCarSlots  int         `db:"available_car_slots"`
	TotalBikeSlots     int         `db:"total_bike_slots"`
	AvailableBikeSlots int         `db:"available_bike_slots"`
	MaxDurationHours   float64     `db:"max_duration_hours"`
	FineAmount         float64     `db:"fine_amount"`
	BillingMode        null.String `db:"billing_mode"`
	IsAvailable        bool        `db:"is_available"`
	model.Metadata
}

// HasPosition is false for lots registered without coordinates.
func (l Lot) HasPosition() bool {
	return l.Latitude.Valid && l.Longitude.Valid
}

// Pricing returns the fare inputs of the lot. Lots without their own billing
// mode use fallback.
func (l Lot) Pricing(fallback fare.BillingMode) fare.Pricing {
	mode := fallback
	if l.BillingMode.Valid && l.BillingMode.String != "" {
		mode = fare.BillingMode(l.BillingMode.String)
	}

	return fare.Pricing{
		PricePerHour:     l.PricePerHour,
		MaxDurationHours: l.MaxDurationHours,
		FineAmount:       l.FineAmount,
		Mode:             mode,
	}
}

// AvailableSlots returns the free capacity for a vehicle class.
func (l Lot) AvailableSlots(vehicleType string) int {
	if vehicleType == VehicleTypeBike {
		return l.AvailableBikeSlots
	}

	return l.AvailableCarSlots
}

// OccupiedSlots is total minus available for a vehicle class.
func (l Lot) OccupiedSlots(vehicleType string) int {
	if vehicleType == VehicleTypeBike {
		return l.TotalBikeSlots - l.AvailableBikeSlots
	}

	return l.TotalCarSlots - l.AvailableCarSlots
}

// AvailableColumn is the counter column for a vehicle class.
func AvailableColumn(vehicleType string) string {
	if vehicleType == VehicleTypeBike {
		return FieldAvailableBikeSlots
	}

	return FieldAvailableCarSlots
}
