package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"parkflow/infras/otel"
	"parkflow/infras/postgres"
	"parkflow/internal/domains/booking/lifecycle"
	"parkflow/internal/domains/booking/model"
	lotModel "parkflow/internal/domains/lot/model"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	gRepo "parkflow/shared/repository"
	"strings"

	"github.com/jmoiron/sqlx"
)

const activePlateIndex = "bookings_active_plate_idx"

// completedColumns are written once, when a booking is checked out.
var completedColumns = []string{
	model.FieldStatus,
	model.FieldExitTime,
	model.FieldTotalAmount,
	model.FieldBaseCost,
	model.FieldFineApplied,
	model.FieldPricePerHour,
	model.FieldBillingMode,
	constant.FieldModifiedAt,
	constant.FieldModifiedBy,
}

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Open(ctx context.Context, booking model.Booking) error
	Complete(ctx context.Context, booking model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Open inserts an active booking and takes one slot of its vehicle class in a
// single transaction. The partial unique index on (lot_id, vehicle_number)
// decides concurrent entries of the same plate.
func (r *repositoryImpl) Open(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Open")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, booking); err != nil {
			if postgres.IsUniqueViolation(err, activePlateIndex) {
				return lifecycle.ErrDuplicateActiveBooking
			}

			return err //nolint:wrapcheck
		}

		column := lotModel.AvailableColumn(booking.VehicleType)
		query := fmt.Sprintf(
			"UPDATE %s SET %s = %s - 1 WHERE %s = :lot_id AND %s = TRUE AND %s > 0",
			lotModel.TableName, column, column, lotModel.FieldID, lotModel.FieldIsAvailable, column,
		)

		return r.ExecOne(ctx, tx, query, map[string]any{"lot_id": booking.LotID}, model.ErrNoCapacity)
	})
}

// Complete closes an active booking and frees its slot. A booking that is no
// longer active is left untouched and ErrAlreadyCompleted is returned.
func (r *repositoryImpl) Complete(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Complete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		sets := make([]string, 0, len(completedColumns))
		for _, col := range completedColumns {
			sets = append(sets, col+" = :"+col)
		}

		query := fmt.Sprintf(
			"UPDATE %s SET %s WHERE %s = :id AND %s = '%s'",
			model.TableName, strings.Join(sets, ", "), model.FieldID, model.FieldStatus, model.StatusActive,
		)

		if err := r.ExecOne(ctx, tx, query, booking, lifecycle.ErrAlreadyCompleted); err != nil {
			return err
		}

		column := lotModel.AvailableColumn(booking.VehicleType)
		total := lotModel.FieldTotalCarSlots

		if booking.VehicleType == lotModel.VehicleTypeBike {
			total = lotModel.FieldTotalBikeSlots
		}

		query = fmt.Sprintf(
			"UPDATE %s SET %s = LEAST(%s + 1, %s) WHERE %s = :lot_id",
			lotModel.TableName, column, column, total, lotModel.FieldID,
		)

		return r.ExecOne(ctx, tx, query, map[string]any{"lot_id": booking.LotID}, lotModel.ErrLotNotFound)
	})
}
