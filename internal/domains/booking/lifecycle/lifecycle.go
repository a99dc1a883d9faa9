// Package lifecycle holds the booking state machine: a booking opens as
// active and is closed exactly once by checkout.
package lifecycle

import (
	"errors"
	"parkflow/internal/domains/booking/model"
	"parkflow/internal/domains/fare"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

var (
	ErrDuplicateActiveBooking = errors.New("vehicle already has an active booking at this lot")
	ErrAlreadyCompleted       = errors.New("booking is already completed")
)

// Entry is a vehicle arriving at a lot.
type Entry struct {
	LotID         string
	VehicleNumber string
	VehicleType   string
	OwnerName     string
}

// NormalizePlate uppercases and trims a vehicle number.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Open starts a booking unless the plate is already parked at the lot.
// active is whatever the caller knows about current bookings; it may hold
// bookings from other lots.
func Open(active []model.Booking, req Entry, now time.Time) (model.Booking, error) {
	plate := NormalizePlate(req.VehicleNumber)

	for _, b := range active {
		if b.IsActive() && b.LotID == req.LotID && NormalizePlate(b.VehicleNumber) == plate {
			return model.Booking{}, ErrDuplicateActiveBooking
		}
	}

	booking := model.Booking{
		ID:            uuid.NewString(),
		LotID:         req.LotID,
		VehicleNumber: plate,
		VehicleType:   req.VehicleType,
		EntryTime:     now,
		Status:        model.StatusActive,
	}

	if owner := strings.TrimSpace(req.OwnerName); owner != "" {
		booking.OwnerName = null.StringFrom(owner)
	}

	return booking, nil
}

// Checkout closes b at exit using the lot's current pricing, which is then
// stored on the booking. The input is never modified; on error no transition
// happens.
func Checkout(b model.Booking, pricing fare.Pricing, exit time.Time) (model.Booking, fare.Quote, error) {
	if !b.IsActive() {
		return b, fare.Quote{}, ErrAlreadyCompleted
	}

	quote, err := fare.Calculate(b.EntryTime, exit, pricing)
	if err != nil {
		return b, fare.Quote{}, err //nolint:wrapcheck
	}

	closed := b
	closed.Status = model.StatusCompleted
	closed.ExitTime = null.TimeFrom(exit)
	closed.TotalAmount = null.FloatFrom(quote.RoundedTotal.InexactFloat64())
	closed.BaseCost = null.FloatFrom(quote.BaseCost)
	closed.FineApplied = null.FloatFrom(quote.FineApplied)
	closed.PricePerHour = null.FloatFrom(pricing.PricePerHour)
	closed.BillingMode = null.StringFrom(string(quote.Mode))

	return closed, quote, nil
}
