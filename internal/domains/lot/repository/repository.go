package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"parkflow/infras/otel"
	"parkflow/infras/postgres"
	"parkflow/internal/domains/lot/model"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	gRepo "parkflow/shared/repository"

	"github.com/jmoiron/sqlx"
)

// ErrBelowOccupancy is returned when a new slot total would leave fewer slots
// than vehicles currently parked.
var ErrBelowOccupancy = errors.New("slot total cannot be lower than current occupancy")

type Lot interface {
	Insert(ctx context.Context, model model.Lot) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Lot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Lot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Lot, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateSettings(ctx context.Context, id string, fields map[string]any) error
	UpdateSettingsTx(ctx context.Context, sqltx *sqlx.Tx, id string, fields map[string]any) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Lot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Lot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Lot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateSettings writes fields in one statement. A changed slot total shifts
// the matching available counter by the same delta so occupancy is kept; the
// slot CHECK constraints reject totals below occupancy.
func (r *repositoryImpl) UpdateSettings(ctx context.Context, id string, fields map[string]any) error {
	return r.updateSettings(ctx, r.db.Write, id, fields)
}

func (r *repositoryImpl) UpdateSettingsTx(ctx context.Context, sqltx *sqlx.Tx, id string, fields map[string]any) error {
	return r.updateSettings(ctx, sqltx, id, fields)
}

func (r *repositoryImpl) updateSettings(ctx context.Context, exec gRepo.Execer, id string, fields map[string]any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".parking_lot.UpdateSettings")
	defer scope.End()

	sets := make([]string, 0, len(fields)+2)

	for _, col := range slices.Sorted(maps.Keys(fields)) {
		switch col {
		case model.FieldTotalCarSlots:
			sets = append(sets, fmt.Sprintf("%s = %s + (:%s - %s)", model.FieldAvailableCarSlots, model.FieldAvailableCarSlots, col, col))
		case model.FieldTotalBikeSlots:
			sets = append(sets, fmt.Sprintf("%s = %s + (:%s - %s)", model.FieldAvailableBikeSlots, model.FieldAvailableBikeSlots, col, col))
		}

		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
	}

	args := maps.Clone(fields)
	args[model.FieldID] = id

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = :%s", model.TableName, strings.Join(sets, ", "), model.FieldID, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err := r.ExecOne(ctx, exec, query, args, model.ErrLotNotFound)
	if postgres.IsCheckViolation(err, "") {
		return ErrBelowOccupancy
	}

	return err //nolint:wrapcheck
}
