package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"parkflow/infras/otel"
	"parkflow/infras/postgres"
	"parkflow/internal/domains/user/model"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	gRepo "parkflow/shared/repository"
	"parkflow/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountBy(ctx context.Context, column string, filter gDto.FilterGroup) (map[string]int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	TransitionStatusTx(ctx context.Context, sqltx *sqlx.Tx, id, from, to, modifiedBy string) error
}

// User reads and writes accounts of every role. Business accounts carry a
// review status that gates their lot.
type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// TransitionStatusTx moves an account from one status to another. It returns
// ErrStatusChanged when the stored status is no longer from.
func (r *repositoryImpl) TransitionStatusTx(ctx context.Context, sqltx *sqlx.Tx, id, from, to, modifiedBy string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = :to, %s = :modified_at, %s = :modified_by WHERE %s = :id AND %s = :from",
		model.TableName, model.FieldStatus, constant.FieldModifiedAt, constant.FieldModifiedBy, model.FieldID, model.FieldStatus,
	)

	return r.ExecOne(ctx, sqltx, query, map[string]any{ //nolint:wrapcheck
		"id":                     id,
		"from":                   from,
		"to":                     to,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: modifiedBy,
	}, model.ErrStatusChanged)
}
