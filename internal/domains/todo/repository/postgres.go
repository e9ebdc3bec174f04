package repository

import (
	"context"
	"fmt"

	"todoapi/infras/otel"
	"todoapi/infras/postgres"
	"todoapi/internal/domains/todo/model"
	"todoapi/shared"
	"todoapi/shared/constant"
	gDto "todoapi/shared/dto"
	gRepo "todoapi/shared/repository"

	"github.com/jmoiron/sqlx"
)

type postgresImpl struct {
	gRepo.Repository[model.Todo]
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Todo {
	return &postgresImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *postgresImpl) Find(ctx context.Context, id int64) (model.Todo, bool, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *postgresImpl) FindAll(ctx context.Context, params gDto.QueryParams, filter model.Filter) ([]model.Todo, error) {
	return r.GetAll(ctx, params, filter.FilterGroup())
}

func (r *postgresImpl) Count(ctx context.Context, filter model.Filter) (int, error) {
	return r.Repository.Count(ctx, filter.FilterGroup())
}

func (r *postgresImpl) InsertBulk(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	created := make([]model.Todo, len(todos))
	copy(created, todos)

	if len(todos) == 0 {
		return created, nil
	}

	err := r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		ids, err := r.InsertBulkTx(ctx, sqltx, todos)
		if err != nil {
			return err
		}

		for i, id := range ids {
			created[i].ID = id
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert todos: %w", err)
	}

	return created, nil
}

func (r *postgresImpl) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.WithinTx")
	defer scope.End()

	return r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		return fn(ctx, &postgresTx{repo: r, sqltx: sqltx})
	})
}

func (r *postgresImpl) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.Repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

type postgresTx struct {
	repo  *postgresImpl
	sqltx *sqlx.Tx
}

func (t *postgresTx) Insert(ctx context.Context, todo model.Todo) (model.Todo, error) {
	id, err := t.repo.InsertTx(ctx, t.sqltx, todo)
	if err != nil {
		return todo, err
	}

	todo.ID = id

	return todo, nil
}

func (t *postgresTx) Update(ctx context.Context, todo model.Todo) (bool, error) {
	fields := map[string]any{
		model.FieldName:          todo.Name,
		model.FieldIsComplete:    todo.IsComplete,
		constant.FieldModifiedAt: todo.ModifiedAt,
	}

	affected, err := t.repo.UpdateTx(ctx, t.sqltx, fields, shared.FilterByID(todo.ID, model.FieldID, model.TableName))
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
