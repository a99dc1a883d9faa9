package dto

import (
	"fmt"
	"parkflow/config"
	"parkflow/internal/domains/fare"
	"parkflow/internal/domains/lot/model"
	"parkflow/internal/domains/lot/ranking"
	"parkflow/shared"
	gDto "parkflow/shared/dto"
	gModel "parkflow/shared/model"
	"parkflow/shared/timezone"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

const metresPerKm = 1000

// CreateLotRequest is filled from business registration. The lot stays hidden
// until an admin approves its owner.
type CreateLotRequest struct {
	Name             string   `json:"name"               validate:"required,max=150"`
	Address          string   `json:"address"            validate:"omitempty,max=255"`
	Latitude         *float64 `json:"latitude"           validate:"required_with=Longitude,omitempty,latitude"`
	Longitude        *float64 `json:"longitude"          validate:"required_with=Latitude,omitempty,longitude"`
	LicenseID        string   `json:"license_id"         validate:"required,max=100"`
	PricePerHour     float64  `json:"price_per_hour"     validate:"gte=0"`
	TotalCarSlots    int      `json:"total_car_slots"    validate:"gte=0"`
	TotalBikeSlots   int      `json:"total_bike_slots"   validate:"gte=0"`
	MaxDurationHours float64  `json:"max_duration_hours" validate:"omitempty,gt=0"`
	FineAmount       float64  `json:"fine_amount"        validate:"gte=0"`
}

const defaultMaxDurationHours = 24

func (c *CreateLotRequest) ToModel(ownerID, proofDocURL string) model.Lot {
	maxDuration := c.MaxDurationHours
	if maxDuration == 0 {
		maxDuration = defaultMaxDurationHours
	}

	return model.Lot{
		ID:                 uuid.NewString(),
		OwnerID:            ownerID,
		Name:               c.Name,
		Address:            c.Address,
		Latitude:           null.FloatFromPtr(c.Latitude),
		Longitude:          null.FloatFromPtr(c.Longitude),
		LicenseID:          c.LicenseID,
		ProofDocURL:        null.NewString(proofDocURL, proofDocURL != ""),
		PricePerHour:       c.PricePerHour,
		TotalCarSlots:      c.TotalCarSlots,
		AvailableCarSlots:  c.TotalCarSlots,
		TotalBikeSlots:     c.TotalBikeSlots,
		AvailableBikeSlots: c.TotalBikeSlots,
		MaxDurationHours:   maxDuration,
		FineAmount:         c.FineAmount,
		IsAvailable:        false,
		Metadata:           gModel.NewMetadata(ownerID, timezone.Now()),
	}
}

// BillingModeDefault clears the lot's own billing mode so APP_BILLING_MODE
// applies again.
const BillingModeDefault BillingModeSetting = "default"

// BillingModeSetting is a billing mode or BillingModeDefault.
type BillingModeSetting string

func (m BillingModeSetting) Validate(cfg *config.Config) error {
	if m == BillingModeDefault {
		return nil
	}

	return fare.BillingMode(m).Validate(cfg) //nolint:wrapcheck
}

// UpdateSettingsRequest carries the owner-editable lot settings. Nil fields
// are left unchanged.
type UpdateSettingsRequest struct {
	PricePerHour     *float64           `db:"price_per_hour"     json:"price_per_hour"     validate:"omitempty,gte=0"`
	TotalCarSlots    *int               `db:"total_car_slots"    json:"total_car_slots"    validate:"omitempty,gte=0"`
	TotalBikeSlots   *int               `db:"total_bike_slots"   json:"total_bike_slots"   validate:"omitempty,gte=0"`
	MaxDurationHours *float64           `db:"max_duration_hours" json:"max_duration_hours" validate:"omitempty,gt=0"`
	FineAmount       *float64           `db:"fine_amount"        json:"fine_amount"        validate:"omitempty,gte=0"`
	BillingMode      BillingModeSetting `db:"billing_mode"       json:"billing_mode"       validate:"omitempty,parkflow" swaggertype:"string" enums:"per_minute,per_hour_block,default"`
	IsAvailable      *bool              `db:"is_available"       json:"is_available"`
}

func (u UpdateSettingsRequest) IsEmpty() bool {
	return u == UpdateSettingsRequest{}
}

// Fields lists the columns to write. "default" as billing mode writes NULL.
func (u UpdateSettingsRequest) Fields(modifiedBy string) map[string]any {
	fields := shared.TransformFields(u, modifiedBy)

	switch u.BillingMode {
	case "":
	case BillingModeDefault:
		fields[model.FieldBillingMode] = nil
	default:
		mode, _ := fare.ParseBillingMode(string(u.BillingMode))
		fields[model.FieldBillingMode] = mode
	}

	return fields
}

type LotResponse struct {
	ID                 string      `json:"id"`
	OwnerID            string      `json:"owner_id"`
	Name               string      `json:"name"`
	Address            string      `json:"address"`
	Latitude           null.Float  `json:"latitude"             swaggertype:"number"`
	Longitude          null.Float  `json:"longitude"            swaggertype:"number"`
	LicenseID          string      `json:"license_id"`
	ProofDocURL        null.String `json:"proof_doc_url"        swaggertype:"string"`
	PricePerHour       float64     `json:"price_per_hour"`
	TotalCarSlots      int         `json:"total_car_slots"`
	AvailableCarSlots  int         `json:"available_car_slots"`
	TotalBikeSlots     int         `json:"total_bike_slots"`
	AvailableBikeSlots int         `json:"available_bike_slots"`
	MaxDurationHours   float64     `json:"max_duration_hours"`
	FineAmount         float64     `json:"fine_amount"`
	BillingMode        string      `json:"billing_mode"`
	IsAvailable        bool        `json:"is_available"`
	gDto.Metadata
}

// FromModel resolves the billing mode against fallback so clients always see
// the mode in effect.
func (r *LotResponse) FromModel(model model.Lot, fallback fare.BillingMode) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Address = model.Address
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.LicenseID = model.LicenseID
	r.ProofDocURL = model.ProofDocURL
	r.PricePerHour = model.PricePerHour
	r.TotalCarSlots = model.TotalCarSlots
	r.AvailableCarSlots = model.AvailableCarSlots
	r.TotalBikeSlots = model.TotalBikeSlots
	r.AvailableBikeSlots = model.AvailableBikeSlots
	r.MaxDurationHours = model.MaxDurationHours
	r.FineAmount = model.FineAmount
	r.BillingMode = string(model.Pricing(fallback).Mode)
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetLotsResponse struct {
	Lots      []LotResponse `json:"lots"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetLotsResponse) FromModels(models []model.Lot, fallback fare.BillingMode, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Lots = make([]LotResponse, len(models))
	for i, mod := range models {
		r.Lots[i].FromModel(mod, fallback)
	}
}

type NearbyRequest struct {
	Latitude  float64 `json:"lat"   validate:"latitude"`
	Longitude float64 `json:"lng"   validate:"longitude"`
	Limit     int     `json:"limit" validate:"omitempty,gt=0,lte=100"`
}

func (n NearbyRequest) Position() ranking.Position {
	return ranking.Position{Lat: n.Latitude, Lng: n.Longitude}
}

type NearbyLotResponse struct {
	LotResponse
	DistanceKm    float64 `json:"distance_km"`
	DistanceLabel string  `json:"distance_label"`
}

func (r *NearbyLotResponse) FromRanked(ranked ranking.Ranked, fallback fare.BillingMode) {
	r.LotResponse.FromModel(ranked.Lot, fallback)
	r.DistanceKm = ranked.DistanceKm
	r.DistanceLabel = DistanceLabel(ranked.DistanceKm)
}

// DistanceLabel prints kilometres above 1 km and whole metres below.
func DistanceLabel(km float64) string {
	if km > 1 {
		return fmt.Sprintf("%.1f km", km)
	}

	return fmt.Sprintf("%.0f m", km*metresPerKm)
}

type NearbyResponse struct {
	Lots []NearbyLotResponse `json:"lots"`
}

func (r *NearbyResponse) FromRanked(ranked []ranking.Ranked, fallback fare.BillingMode) {
	r.Lots = make([]NearbyLotResponse, len(ranked))
	for i, item := range ranked {
		r.Lots[i].FromRanked(item, fallback)
	}
}

type SearchResponse struct {
	Lots        []LotResponse `json:"lots"`
	Focus       *LotResponse  `json:"focus"`
	Suggestions []string      `json:"suggestions"`
}

func (r *SearchResponse) FromResult(result ranking.SearchResult, suggestions []string, fallback fare.BillingMode) {
	r.Lots = make([]LotResponse, len(result.Lots))
	for i, mod := range result.Lots {
		r.Lots[i].FromModel(mod, fallback)
	}

	if result.Focus != nil {
		r.Focus = &LotResponse{}
		r.Focus.FromModel(*result.Focus, fallback)
	}

	r.Suggestions = suggestions
}
