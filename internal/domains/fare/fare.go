// Package fare computes parking duration, base cost and overage fine for a stay.
//
// The package has no I/O. A lot bills either per minute or in whole-hour
// blocks.
package fare

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"parkflow/config"

	"github.com/shopspring/decimal"
)

type BillingMode string

const (
	BillingModePerMinute    BillingMode = "per_minute"
	BillingModePerHourBlock BillingMode = "per_hour_block"
)

const (
	minutesPerHour = 60
	displayPlaces  = 2
)

var (
	ErrInvalidInterval    = errors.New("exit time is before entry time")
	ErrInvalidPricing     = errors.New("invalid pricing configuration")
	ErrUnknownBillingMode = errors.New("unknown billing mode")
)

// ParseBillingMode accepts the persisted/configured spelling of a mode.
func ParseBillingMode(value string) (BillingMode, error) {
	mode := BillingMode(strings.ToLower(strings.TrimSpace(value)))

	switch mode {
	case BillingModePerMinute, BillingModePerHourBlock:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBillingMode, value)
	}
}

// Validate is called by the request validator through the `parkflow` tag.
func (m BillingMode) Validate(_ *config.Config) error {
	if m == "" {
		return nil
	}

	_, err := ParseBillingMode(string(m))

	return err
}

// Pricing is the subset of a lot's configuration that a quote depends on.
type Pricing struct {
	PricePerHour     float64
	MaxDurationHours float64
	FineAmount       float64
	Mode             BillingMode
}

func (p Pricing) validate() error {
	switch {
	case p.PricePerHour < 0:
		return fmt.Errorf("%w: price per hour must not be negative", ErrInvalidPricing)
	case p.FineAmount < 0:
		return fmt.Errorf("%w: fine must not be negative", ErrInvalidPricing)
	case p.MaxDurationHours <= 0:
		return fmt.Errorf("%w: max duration must be positive", ErrInvalidPricing)
	}

	if _, err := ParseBillingMode(string(p.Mode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPricing, err)
	}

	return nil
}

// Quote is derived on demand and never persisted. Total keeps full precision;
// RoundedTotal is what gets displayed and charged.
type Quote struct {
	DurationMinutes int64
	DurationHours   float64
	BaseCost        float64
	Exceeded        bool
	FineApplied     float64
	Total           float64
	RoundedTotal    decimal.Decimal
	Mode            BillingMode
}

func Calculate(entry, exit time.Time, pricing Pricing) (Quote, error) {
	if exit.Before(entry) {
		return Quote{}, ErrInvalidInterval
	}

	if err := pricing.validate(); err != nil {
		return Quote{}, err
	}

	elapsed := exit.Sub(entry)
	minutes := int64(math.Floor(elapsed.Minutes()))
	hours := elapsed.Hours()

	var base float64

	switch pricing.Mode {
	case BillingModePerMinute:
		base = float64(minutes) * (pricing.PricePerHour / minutesPerHour)
	case BillingModePerHourBlock:
		base = math.Ceil(hours) * pricing.PricePerHour
	}

	quote := Quote{
		DurationMinutes: minutes,
		DurationHours:   hours,
		BaseCost:        base,
		Exceeded:        hours > pricing.MaxDurationHours,
		Total:           base,
		Mode:            pricing.Mode,
	}

	if quote.Exceeded {
		quote.FineApplied = pricing.FineAmount
		quote.Total += pricing.FineAmount
	}

	quote.RoundedTotal = decimal.NewFromFloat(quote.Total).Round(displayPlaces)

	return quote, nil
}

// Display formats the rounded total the way receipts print it.
func (q Quote) Display() string {
	return q.RoundedTotal.StringFixed(displayPlaces)
}

// HoursAndMinutes splits the floored duration for "2h 30m" style output.
func (q Quote) HoursAndMinutes() (int64, int64) {
	return q.DurationMinutes / minutesPerHour, q.DurationMinutes % minutesPerHour
}
