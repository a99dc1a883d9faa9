package fare_test

import (
	"testing"
	"time"

	"parkflow/internal/domains/fare"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entry = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func pricing(price, maxHours, fine float64, mode fare.BillingMode) fare.Pricing {
	return fare.Pricing{
		PricePerHour:     price,
		MaxDurationHours: maxHours,
		FineAmount:       fine,
		Mode:             mode,
	}
}

func TestCalculate_ZeroDurationCostsNothing(t *testing.T) {
	for _, mode := range []fare.BillingMode{fare.BillingModePerMinute, fare.BillingModePerHourBlock} {
		t.Run(string(mode), func(t *testing.T) {
			quote, err := fare.Calculate(entry, entry, pricing(100, 1, 50, mode))

			require.NoError(t, err)
			assert.Zero(t, quote.BaseCost)
			assert.Zero(t, quote.DurationMinutes)
			assert.False(t, quote.Exceeded)
			assert.Equal(t, "0.00", quote.Display())
		})
	}
}

func TestCalculate_ThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name         string
		exit         time.Time
		wantExceeded bool
	}{
		{name: "exactly max duration", exit: entry.Add(4 * time.Hour), wantExceeded: false},
		{name: "one second over", exit: entry.Add(4*time.Hour + time.Second), wantExceeded: true},
		{name: "one minute over", exit: entry.Add(4*time.Hour + time.Minute), wantExceeded: true},
	}

	for _, mode := range []fare.BillingMode{fare.BillingModePerMinute, fare.BillingModePerHourBlock} {
		for _, tt := range tests {
			t.Run(string(mode)+"/"+tt.name, func(t *testing.T) {
				quote, err := fare.Calculate(entry, tt.exit, pricing(50, 4, 100, mode))

				require.NoError(t, err)
				assert.Equal(t, tt.wantExceeded, quote.Exceeded)

				if tt.wantExceeded {
					assert.Equal(t, 100.0, quote.FineApplied)
					assert.InDelta(t, quote.BaseCost+100, quote.Total, 1e-9)
				} else {
					assert.Zero(t, quote.FineApplied)
					assert.InDelta(t, quote.BaseCost, quote.Total, 1e-9)
				}
			})
		}
	}
}

func TestCalculate_PerHourBlock(t *testing.T) {
	quote, err := fare.Calculate(entry, entry.Add(61*time.Minute), pricing(100, 1, 0, fare.BillingModePerHourBlock))

	require.NoError(t, err)
	assert.Equal(t, 200.0, quote.BaseCost)
	assert.Equal(t, int64(61), quote.DurationMinutes)
	assert.True(t, quote.Exceeded)
}

func TestCalculate_PerMinute(t *testing.T) {
	quote, err := fare.Calculate(entry, entry.Add(90*time.Minute), pricing(60, 4, 0, fare.BillingModePerMinute))

	require.NoError(t, err)
	assert.InDelta(t, 90.0, quote.BaseCost, 1e-9)
	assert.InDelta(t, 1.5, quote.DurationHours, 1e-9)
}

func TestCalculate_PerMinuteFloorsPartialMinutes(t *testing.T) {
	quote, err := fare.Calculate(entry, entry.Add(10*time.Minute+59*time.Second), pricing(60, 4, 0, fare.BillingModePerMinute))

	require.NoError(t, err)
	assert.Equal(t, int64(10), quote.DurationMinutes)
	assert.InDelta(t, 10.0, quote.BaseCost, 1e-9)
}

func TestCalculate_EndToEndScenario(t *testing.T) {
	exit := time.Date(2025, 3, 14, 11, 30, 0, 0, time.UTC)

	quote, err := fare.Calculate(entry, exit, pricing(50, 4, 100, fare.BillingModePerHourBlock))

	require.NoError(t, err)
	assert.InDelta(t, 2.5, quote.DurationHours, 1e-9)
	assert.Equal(t, 150.0, quote.BaseCost)
	assert.False(t, quote.Exceeded)
	assert.Equal(t, "150.00", quote.Display())

	hours, minutes := quote.HoursAndMinutes()
	assert.Equal(t, int64(2), hours)
	assert.Equal(t, int64(30), minutes)
}

func TestCalculate_RoundingKeepsUnroundedTotal(t *testing.T) {
	// 7 minutes at 10/h is 1.1666...
	quote, err := fare.Calculate(entry, entry.Add(7*time.Minute), pricing(10, 4, 0, fare.BillingModePerMinute))

	require.NoError(t, err)
	assert.InDelta(t, 7.0/6.0, quote.Total, 1e-12)
	assert.Equal(t, "1.17", quote.Display())
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		exit    time.Time
		pricing fare.Pricing
		wantErr error
	}{
		{
			name:    "exit before entry",
			exit:    entry.Add(-time.Minute),
			pricing: pricing(50, 4, 100, fare.BillingModePerMinute),
			wantErr: fare.ErrInvalidInterval,
		},
		{
			name:    "negative price",
			exit:    entry.Add(time.Hour),
			pricing: pricing(-1, 4, 0, fare.BillingModePerMinute),
			wantErr: fare.ErrInvalidPricing,
		},
		{
			name:    "negative fine",
			exit:    entry.Add(time.Hour),
			pricing: pricing(10, 4, -5, fare.BillingModePerMinute),
			wantErr: fare.ErrInvalidPricing,
		},
		{
			name:    "zero max duration",
			exit:    entry.Add(time.Hour),
			pricing: pricing(10, 0, 0, fare.BillingModePerMinute),
			wantErr: fare.ErrInvalidPricing,
		},
		{
			name:    "unknown mode",
			exit:    entry.Add(time.Hour),
			pricing: pricing(10, 4, 0, "per_day"),
			wantErr: fare.ErrUnknownBillingMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fare.Calculate(entry, tt.exit, tt.pricing)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseBillingMode(t *testing.T) {
	mode, err := fare.ParseBillingMode(" PER_MINUTE ")
	require.NoError(t, err)
	assert.Equal(t, fare.BillingModePerMinute, mode)

	_, err = fare.ParseBillingMode("weekly")
	assert.ErrorIs(t, err, fare.ErrUnknownBillingMode)

	assert.NoError(t, fare.BillingMode("").Validate(nil))
	assert.Error(t, fare.BillingMode("weekly").Validate(nil))
}
