package lifecycle_test

import (
	"errors"
	"parkflow/internal/domains/booking/lifecycle"
	"parkflow/internal/domains/booking/model"
	"parkflow/internal/domains/fare"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

var (
	now     = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	pricing = fare.Pricing{PricePerHour: 50, MaxDurationHours: 4, FineAmount: 100, Mode: fare.BillingModePerHourBlock}
)

func TestOpen(t *testing.T) {
	active := []model.Booking{
		{ID: "b1", LotID: "lot-1", VehicleNumber: "B 1234 XYZ", Status: model.StatusActive},
		{ID: "b2", LotID: "lot-2", VehicleNumber: "D 777 AB", Status: model.StatusActive},
		{ID: "b3", LotID: "lot-1", VehicleNumber: "D 777 AB", Status: model.StatusCompleted},
	}

	tests := []struct {
		name      string
		req       lifecycle.Entry
		wantErr   error
		wantPlate string
	}{
		{
			name:    "same plate same lot rejected",
			req:     lifecycle.Entry{LotID: "lot-1", VehicleNumber: "b 1234 xyz ", VehicleType: "car"},
			wantErr: lifecycle.ErrDuplicateActiveBooking,
		},
		{
			name:      "same plate at another lot allowed",
			req:       lifecycle.Entry{LotID: "lot-2", VehicleNumber: "b 1234 xyz", VehicleType: "car"},
			wantPlate: "B 1234 XYZ",
		},
		{
			name:      "completed booking does not block",
			req:       lifecycle.Entry{LotID: "lot-1", VehicleNumber: "D 777 AB", VehicleType: "bike"},
			wantPlate: "D 777 AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := lifecycle.Open(active, tt.req, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, b.ID)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, b.ID)
			assert.Equal(t, tt.wantPlate, b.VehicleNumber)
			assert.Equal(t, tt.req.LotID, b.LotID)
			assert.Equal(t, model.StatusActive, b.Status)
			assert.Equal(t, now, b.EntryTime)
			assert.False(t, b.ExitTime.Valid)
			assert.False(t, b.TotalAmount.Valid)
		})
	}
}

func TestOpen_OwnerName(t *testing.T) {
	b, err := lifecycle.Open(nil, lifecycle.Entry{LotID: "lot-1", VehicleNumber: "x1", OwnerName: "  Rina "}, now)
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("Rina"), b.OwnerName)

	b, err = lifecycle.Open(nil, lifecycle.Entry{LotID: "lot-1", VehicleNumber: "x1", OwnerName: "  "}, now)
	require.NoError(t, err)
	assert.False(t, b.OwnerName.Valid)
}

func TestCheckout(t *testing.T) {
	open := model.Booking{ID: "b1", LotID: "lot-1", VehicleNumber: "B 1", EntryTime: now, Status: model.StatusActive}
	exit := now.Add(2*time.Hour + 30*time.Minute)

	closed, quote, err := lifecycle.Checkout(open, pricing, exit)

	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, closed.Status)
	assert.Equal(t, null.TimeFrom(exit), closed.ExitTime)
	assert.Equal(t, null.FloatFrom(150), closed.TotalAmount)
	assert.Equal(t, "150.00", quote.Display())
	assert.Equal(t, null.FloatFrom(150), closed.BaseCost)
	assert.Equal(t, null.FloatFrom(0), closed.FineApplied)
	assert.Equal(t, null.FloatFrom(50), closed.PricePerHour)
	assert.Equal(t, null.StringFrom(string(fare.BillingModePerHourBlock)), closed.BillingMode)

	assert.Equal(t, model.StatusActive, open.Status)
	assert.False(t, open.ExitTime.Valid)
}

func TestCheckout_Overstay(t *testing.T) {
	open := model.Booking{ID: "b1", EntryTime: now, Status: model.StatusActive}

	closed, quote, err := lifecycle.Checkout(open, pricing, now.Add(5*time.Hour))

	require.NoError(t, err)
	assert.True(t, quote.Exceeded)
	assert.Equal(t, null.FloatFrom(350), closed.TotalAmount)
	assert.Equal(t, null.FloatFrom(250), closed.BaseCost)
	assert.Equal(t, null.FloatFrom(100), closed.FineApplied)
}

func TestCheckout_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		booking model.Booking
		pricing fare.Pricing
		exit    time.Time
		wantErr error
	}{
		{
			name:    "already completed",
			booking: model.Booking{ID: "b1", EntryTime: now, Status: model.StatusCompleted, TotalAmount: null.FloatFrom(10)},
			pricing: pricing,
			exit:    now.Add(time.Hour),
			wantErr: lifecycle.ErrAlreadyCompleted,
		},
		{
			name:    "exit before entry",
			booking: model.Booking{ID: "b1", EntryTime: now, Status: model.StatusActive},
			pricing: pricing,
			exit:    now.Add(-time.Minute),
			wantErr: fare.ErrInvalidInterval,
		},
		{
			name:    "broken pricing",
			booking: model.Booking{ID: "b1", EntryTime: now, Status: model.StatusActive},
			pricing: fare.Pricing{PricePerHour: 10, MaxDurationHours: 0, Mode: fare.BillingModePerMinute},
			exit:    now.Add(time.Hour),
			wantErr: fare.ErrInvalidPricing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := lifecycle.Checkout(tt.booking, tt.pricing, tt.exit)

			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, tt.booking, got)
		})
	}
}
