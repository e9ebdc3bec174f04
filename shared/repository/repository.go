package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"todoapi/infras/otel"
	"todoapi/infras/postgres"
	"todoapi/shared/constant"
	"todoapi/shared/dto"
	"todoapi/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
)

// Repository is a table gateway over sqlx for a struct T whose fields carry `db` tags.
// Fields tagged `readonly:"true"` (store-assigned keys) are selected but never inserted.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []string
	InsertColumns []string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) spanName(operation string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, operation)
}

// WithTx runs fn inside a write transaction, committing when fn returns nil.
func (repo *Repository[T]) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("WithTx"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entitas, err)
	}

	if err = fn(sqltx); err != nil {
		if rbErr := sqltx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Repository[T]) insert(ctx context.Context, exec sqlx.ExtContext, model T) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("insert"))
	defer scope.End()

	placeholders := make([]string, 0, len(repo.InsertColumns))
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "), repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, exec, query, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}
	defer rows.Close()

	var id int64

	if !rows.Next() {
		err = rows.Err()
		if err == nil {
			err = sql.ErrNoRows
		}

		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read inserted key (%s): %w", repo.entitas, err)
	}

	if err = rows.Scan(&id); err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to scan inserted key (%s): %w", repo.entitas, err)
	}

	return id, nil
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("InsertTx"))
	defer scope.End()

	return repo.insert(ctx, sqltx, model)
}

// InsertBulkTx inserts models in order and returns their keys in the same order.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) ([]int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("InsertBulkTx"))
	defer scope.End()

	scope.SetAttribute("rows", len(models))

	ids := make([]int64, 0, len(models))

	for _, model := range models {
		id, err := repo.insert(ctx, sqltx, model)
		if err != nil {
			scope.TraceError(err)

			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// Get returns the first row matching filter. The boolean is false when no row matched.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup) (T, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Get"))
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return model, false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1", repo.selectColumns(), repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, true, nil
}

// GetAll lists rows matching filter. params.SortBy must already be sanitized.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("GetAll"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	ordering := fmt.Sprintf("ORDER BY %s.%s ASC", repo.table, repo.primaryColumn)
	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s.%s %s, %s.%s ASC", repo.table, params.SortBy, params.SortDir, repo.table, repo.primaryColumn)
	}

	var pagination string

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.selectColumns(), repo.table, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Count"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.table, repo.primaryColumn, repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &count, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entitas, err)
	}

	return count, nil
}

func (repo *Repository[T]) delete(ctx context.Context, exec sqlx.ExtContext, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("delete"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := sqlx.NamedExecContext(ctx, exec, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	return rowsAffected(result), nil
}

// Delete removes the rows matching filter and reports how many were removed.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Delete"))
	defer scope.End()

	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) update(ctx context.Context, exec sqlx.ExtContext, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("update"))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	updateField := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(updateField, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, mod)

	result, err := sqlx.NamedExecContext(ctx, exec, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return rowsAffected(result), nil
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("UpdateTx"))
	defer scope.End()

	return repo.update(ctx, sqltx, mod, filter)
}

func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("BuildWhereClause"))
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

func (repo *Repository[T]) selectColumns() string {
	qualified := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		qualified[i] = fmt.Sprintf("%s.%s", repo.table, col)
	}

	return strings.Join(qualified, ", ")
}

func rowsAffected(result sql.Result) int64 {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0
	}

	return affected
}

func getColumns(reflectType reflect.Type) (columns []string, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		columns = append(columns, dbTag)

		if field.Tag.Get("readonly") != "true" {
			insertColumns = append(insertColumns, dbTag)
		}
	}

	return columns, insertColumns
}
