package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"parkflow/infras/otel"
	"parkflow/infras/postgres"
	"parkflow/shared/constant"
	"parkflow/shared/dto"
	"parkflow/shared/failure"
	"parkflow/shared/logger"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRequiredFilter = errors.New("required filter")
	ErrUnknownColumn  = errors.New("unknown column")
)

// Execer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Repository is the table gateway embedded by every domain repository. Columns
// come from the `db` tags of T, including embedded structs such as
// model.Metadata.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:            db,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       Columns(reflect.TypeOf(zero)),
	}
}

// Columns lists the db tags of a struct type in field order.
func Columns(typ reflect.Type) []string {
	columns := []string{}

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, Columns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.insert(ctx, tx, model)
}

func (repo *Repository[T]) insert(ctx context.Context, exec Execer, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	placeholders := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := BuildWhereClause(filter)
	if where == "" {
		return false, ErrRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	if err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	}); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the zero T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var model T

	where, args := BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s", repo.selectList(columns), repo.table, where)

	err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model, nil
	case err != nil:
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// GetAll paginates only when params.Limit is set. Sorting is restricted to
// the columns of T.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	models := []T{}

	where, args := BuildWhereClause(filter)

	ordering, err := repo.orderBy(params)
	if err != nil {
		return models, err
	}

	var pagination string

	if params.Limit > 0 {
		args["limit"] = params.Limit
		pagination = "LIMIT :limit"

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			pagination += " OFFSET :offset"
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.selectList(columns), repo.table, where, ordering, pagination)

	if err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	}); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	var count int

	where, args := BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.table, repo.primaryColumn, repo.table, where)

	if err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	}); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

// CountBy groups the rows matching filter by one column of T.
func (repo *Repository[T]) CountBy(ctx context.Context, column string, filter dto.FilterGroup) (map[string]int, error) {
	ctx, scope := repo.scope(ctx, "CountBy")
	defer scope.End()

	if !slices.Contains(repo.columns, column) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	where, args := BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT %[1]s.%[2]s AS value, COUNT(*) AS total FROM %[1]s %[3]s GROUP BY %[1]s.%[2]s", repo.table, column, where)

	groups := []struct {
		Value string `db:"value"`
		Total int    `db:"total"`
	}{}

	if err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &groups, args)
	}); err != nil {
		return nil, repo.fail(scope, "count grouped data", err)
	}

	counts := make(map[string]int, len(groups))
	for _, group := range groups {
		counts[group.Value] = group.Total
	}

	return counts, nil
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, tx, fields, filter)
}

func (repo *Repository[T]) update(ctx context.Context, exec Execer, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := BuildWhereClause(filter)
	if where == "" {
		return ErrRequiredFilter
	}

	sets := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, fields)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

// ExecOne runs a named statement and returns none when it matched no row.
func (repo *Repository[T]) ExecOne(ctx context.Context, exec Execer, query string, arg any, none error) error {
	ctx, scope := repo.scope(ctx, "ExecOne")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	res, err := exec.NamedExecContext(ctx, query, arg)
	if err != nil {
		return repo.fail(scope, "execute statement", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return none
	}

	return nil
}

func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, query string, fn func(stmt *sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return fn(stmt)
}

func (repo *Repository[T]) selectList(columns []string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(columns) > 0 && !slices.Contains(columns, col) {
			continue
		}

		selected = append(selected, repo.table+"."+col)
	}

	return strings.Join(selected, ", ")
}

func (repo *Repository[T]) orderBy(params dto.QueryParams) (string, error) {
	if params.SortBy == "" {
		return "", nil
	}

	if !slices.Contains(repo.columns, params.SortBy) {
		return "", failure.BadRequest(fmt.Errorf("%w: %s", ErrUnknownColumn, params.SortBy)) //nolint:wrapcheck
	}

	direction := dto.SortDirAsc
	if params.SortDir == dto.SortDirDesc {
		direction = dto.SortDirDesc
	}

	return fmt.Sprintf("ORDER BY %s.%s %s", repo.table, params.SortBy, direction), nil
}

func BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}
