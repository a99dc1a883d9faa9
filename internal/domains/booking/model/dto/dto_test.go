package dto_test

import (
	"parkflow/internal/domains/booking/model"
	"parkflow/internal/domains/booking/model/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v4"
)

func TestNewReceipt(t *testing.T) {
	entry := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	issued := entry.Add(24 * time.Hour)

	completed := model.Booking{
		ID:            "b1",
		VehicleNumber: "B 1234 XYZ",
		VehicleType:   "car",
		OwnerName:     null.StringFrom("Asha"),
		EntryTime:     entry,
		ExitTime:      null.TimeFrom(entry.Add(5*time.Hour + 10*time.Minute)),
		Status:        model.StatusCompleted,
		TotalAmount:   null.FloatFrom(400),
		BaseCost:      null.FloatFrom(300),
		FineApplied:   null.FloatFrom(100),
		PricePerHour:  null.FloatFrom(50),
		BillingMode:   null.StringFrom("per_hour_block"),
	}

	tests := []struct {
		name      string
		booking   func() model.Booking
		wantBase  string
		wantFine  string
		wantRate  float64
		wantTotal string
		exceeded  bool
	}{
		{
			name:      "charges stored at checkout",
			booking:   func() model.Booking { return completed },
			wantBase:  "300.00",
			wantFine:  "100.00",
			wantRate:  50,
			wantTotal: "400.00",
			exceeded:  true,
		},
		{
			name: "no fine",
			booking: func() model.Booking {
				b := completed
				b.TotalAmount = null.FloatFrom(300)
				b.FineApplied = null.FloatFrom(0)

				return b
			},
			wantBase:  "300.00",
			wantFine:  "0.00",
			wantRate:  50,
			wantTotal: "300.00",
		},
		{
			name: "total only",
			booking: func() model.Booking {
				b := completed
				b.BaseCost = null.Float{}
				b.FineApplied = null.Float{}
				b.PricePerHour = null.Float{}
				b.BillingMode = null.String{}

				return b
			},
			wantTotal: "400.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dto.NewReceipt(tt.booking(), "Central Parking", issued)

			assert.Equal(t, "Central Parking", doc.LotName)
			assert.Equal(t, "Asha", doc.OwnerName)
			assert.Equal(t, "5h 10m", doc.Duration())
			assert.Equal(t, tt.wantBase, doc.BaseCost)
			assert.Equal(t, tt.wantFine, doc.Fine)
			assert.Equal(t, tt.wantRate, doc.PricePerHour)
			assert.Equal(t, tt.wantTotal, doc.Total)
			assert.Equal(t, tt.exceeded, doc.Exceeded)
			assert.Equal(t, issued, doc.IssuedAt)
		})
	}
}
