package dto

import (
	"parkflow/internal/domains/booking/lifecycle"
	"parkflow/internal/domains/booking/model"
	"parkflow/internal/domains/fare"
	"parkflow/shared"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/receipt"
	"parkflow/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

const minutesPerHour = 60

type EntryRequest struct {
	LotID         string `json:"lot_id"         validate:"required,uuid"`
	VehicleNumber string `json:"vehicle_number" validate:"required,plate"`
	VehicleType   string `json:"vehicle_type"   validate:"required,oneof=car bike"`
	OwnerName     string `json:"owner_name"     validate:"omitempty,max=150"`
}

func (e *EntryRequest) ToEntry() lifecycle.Entry {
	return lifecycle.Entry{
		LotID:         e.LotID,
		VehicleNumber: e.VehicleNumber,
		VehicleType:   e.VehicleType,
		OwnerName:     e.OwnerName,
	}
}

type BookingResponse struct {
	ID            string      `json:"id"`
	LotID         string      `json:"lot_id"`
	VehicleNumber string      `json:"vehicle_number"`
	VehicleType   string      `json:"vehicle_type"`
	OwnerName     null.String `json:"owner_name"     swaggertype:"string"`
	EntryTime     string      `json:"entry_time"`
	ExitTime      null.String `json:"exit_time"      swaggertype:"string"`
	Status        string      `json:"status"`
	TotalAmount   null.Float  `json:"total_amount"   swaggertype:"number"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.LotID = model.LotID
	r.VehicleNumber = model.VehicleNumber
	r.VehicleType = model.VehicleType
	r.OwnerName = model.OwnerName
	r.EntryTime = timezone.Format(model.EntryTime, constant.DateFormat)
	r.ExitTime = null.String{}

	if model.ExitTime.Valid {
		r.ExitTime = null.StringFrom(timezone.Format(model.ExitTime.Time, constant.DateFormat))
	}

	r.Status = model.Status
	r.TotalAmount = model.TotalAmount
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// QuoteResponse is the fare breakdown shown before and at checkout.
type QuoteResponse struct {
	BookingID       string  `json:"booking_id"`
	ExitTime        string  `json:"exit_time"`
	DurationMinutes int64   `json:"duration_minutes"`
	DurationHours   float64 `json:"duration_hours"`
	Hours           int64   `json:"hours"`
	Minutes         int64   `json:"minutes"`
	BillingMode     string  `json:"billing_mode"`
	BaseCost        float64 `json:"base_cost"`
	Exceeded        bool    `json:"exceeded"`
	FineApplied     float64 `json:"fine_applied"`
	Total           string  `json:"total"`
}

func (r *QuoteResponse) FromQuote(bookingID string, exit time.Time, quote fare.Quote) {
	r.BookingID = bookingID
	r.ExitTime = timezone.Format(exit, constant.DateFormat)
	r.DurationMinutes = quote.DurationMinutes
	r.DurationHours = quote.DurationHours
	r.Hours, r.Minutes = quote.HoursAndMinutes()
	r.BillingMode = string(quote.Mode)
	r.BaseCost = quote.BaseCost
	r.Exceeded = quote.Exceeded
	r.FineApplied = quote.FineApplied
	r.Total = quote.Display()
}

type CheckoutResponse struct {
	Booking BookingResponse `json:"booking"`
	Quote   QuoteResponse   `json:"quote"`
}

// NewReceipt prints the charges stored on a completed booking. Pricing
// changes made on the lot after checkout never show up here.
func NewReceipt(booking model.Booking, lotName string, issuedAt time.Time) receipt.Receipt {
	stay := int64(booking.ExitTime.Time.Sub(booking.EntryTime) / time.Minute)

	doc := receipt.Receipt{
		BookingID:     booking.ID,
		LotName:       lotName,
		VehicleNumber: booking.VehicleNumber,
		VehicleType:   booking.VehicleType,
		OwnerName:     booking.OwnerName.String,
		EntryTime:     booking.EntryTime,
		ExitTime:      booking.ExitTime.Time,
		Hours:         stay / minutesPerHour,
		Minutes:       stay % minutesPerHour,
		Total:         money(booking.TotalAmount.Float64),
		IssuedAt:      issuedAt,
	}

	if booking.BaseCost.Valid {
		doc.PricePerHour = booking.PricePerHour.Float64
		doc.BillingMode = booking.BillingMode.String
		doc.BaseCost = money(booking.BaseCost.Float64)
		doc.Exceeded = booking.FineApplied.Float64 > 0
		doc.Fine = money(booking.FineApplied.Float64)
	}

	return doc
}

func money(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
