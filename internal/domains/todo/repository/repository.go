package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"todoapi/config"
	"todoapi/infras/otel"
	"todoapi/infras/postgres"
	"todoapi/internal/domains/todo/model"
	gDto "todoapi/shared/dto"
)

// Todo is the store of todos.
type Todo interface {
	// Find looks a todo up by id. found is false when no todo has that id.
	Find(ctx context.Context, id int64) (todo model.Todo, found bool, err error)
	// FindAll lists the todos matching filter, ordered by id unless params asks otherwise.
	FindAll(ctx context.Context, params gDto.QueryParams, filter model.Filter) ([]model.Todo, error)
	Count(ctx context.Context, filter model.Filter) (int, error)
	// InsertBulk stores every todo or none of them and returns them with their assigned ids,
	// in input order.
	InsertBulk(ctx context.Context, todos []model.Todo) ([]model.Todo, error)
	// WithinTx runs fn as one unit of work that is committed only if fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Delete removes the todo with id. found is false when there was nothing to remove.
	Delete(ctx context.Context, id int64) (found bool, err error)
}

// Tx is the write side of a unit of work.
type Tx interface {
	Insert(ctx context.Context, todo model.Todo) (model.Todo, error)
	// Update overwrites name, completion flag and modification time of the todo with todo.ID.
	Update(ctx context.Context, todo model.Todo) (found bool, err error)
}

// New selects the backing configured by DB_DRIVER.
func New(cfg *config.Config, db *postgres.Connection, otel otel.Otel) Todo {
	if cfg.UsesPostgres() {
		return NewPostgres(db, otel)
	}

	return NewMemory(otel)
}
