package model

import (
	"errors"
	"parkflow/shared/model"
	"time"

	"gopkg.in/guregu/null.v4"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldLotID         = "lot_id"
	FieldVehicleNumber = "vehicle_number"
	FieldVehicleType   = "vehicle_type"
	FieldOwnerName     = "owner_name"
	FieldEntryTime     = "entry_time"
	FieldExitTime      = "exit_time"
	FieldStatus        = "status"
	FieldTotalAmount   = "total_amount"
	FieldBaseCost      = "base_cost"
	FieldFineApplied   = "fine_applied"
	FieldPricePerHour  = "price_per_hour"
	FieldBillingMode   = "billing_mode"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoCapacity      = errors.New("no free slot for this vehicle type")
)

// Cache keys. Every booking mutation clears CachePrefix.
const (
	CachePrefix = "booking:"
	CacheGetAll = "booking:gets"
	CacheCount  = "booking:count"
)

type Booking struct {
	ID            string      `db:"id"`
	LotID         string      `db:"lot_id"`
	VehicleNumber string      `db:"vehicle_number"`
	VehicleType   string      `db:"vehicle_type"`
	OwnerName     null.String `db:"owner_name"`
	EntryTime     time.Time   `db:"entry_time"`
	ExitTime      null.Time   `db:"exit_time"`
	Status        string      `db:"status"`
	TotalAmount   null.Float  `db:"total_amount"`
	// Charged figures, frozen at checkout.
	BaseCost      null.Float  `db:"base_cost"`
	FineApplied   null.Float  `db:"fine_applied"`
	PricePerHour  null.Float  `db:"price_per_hour"`
	BillingMode   null.String `db:"billing_mode"`
	model.Metadata
}

func (b Booking) IsActive() bool {
	return b.Status == StatusActive
}
