package repository

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"todoapi/infras/otel"
	"todoapi/internal/domains/todo/model"
	"todoapi/shared/constant"
	gDto "todoapi/shared/dto"
)

// memoryImpl keeps todos in process. Ids start at 1 and are never reused, even after a
// delete or a rolled back unit of work.
type memoryImpl struct {
	mu     sync.RWMutex
	rows   map[int64]model.Todo
	lastID int64
	otel   otel.Otel
}

func NewMemory(otel otel.Otel) Todo {
	return &memoryImpl{
		rows: map[int64]model.Todo{},
		otel: otel,
	}
}

func (r *memoryImpl) Find(ctx context.Context, id int64) (model.Todo, bool, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Find")
	defer scope.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, found := r.rows[id]

	return todo, found, nil
}

func (r *memoryImpl) FindAll(ctx context.Context, params gDto.QueryParams, filter model.Filter) ([]model.Todo, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.FindAll")
	defer scope.End()

	r.mu.RLock()
	todos := make([]model.Todo, 0, len(r.rows))

	for _, todo := range r.rows {
		if filter.Match(todo) {
			todos = append(todos, todo)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(todos, compareBy(params))

	if params.Limit <= 0 {
		return todos, nil
	}

	start := min(params.Offset(), len(todos))
	end := start + min(params.Limit, len(todos)-start)

	return todos[start:end], nil
}

func (r *memoryImpl) Count(ctx context.Context, filter model.Filter) (int, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Count")
	defer scope.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0

	for _, todo := range r.rows {
		if filter.Match(todo) {
			count++
		}
	}

	return count, nil
}

func (r *memoryImpl) InsertBulk(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	created := make([]model.Todo, 0, len(todos))

	err := r.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		for _, todo := range todos {
			todo, err := tx.Insert(ctx, todo)
			if err != nil {
				return err
			}

			created = append(created, todo)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *memoryImpl) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.WithinTx")
	defer scope.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryTx{rows: maps.Clone(r.rows), lastID: r.lastID}

	if err := fn(ctx, tx); err != nil {
		scope.TraceError(err)
		// keep ids handed out by the failed unit of work burned
		r.lastID = tx.lastID

		return err
	}

	r.rows = tx.rows
	r.lastID = tx.lastID

	return nil
}

func (r *memoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Delete")
	defer scope.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.rows[id]; !found {
		return false, nil
	}

	delete(r.rows, id)

	return true, nil
}

type memoryTx struct {
	rows   map[int64]model.Todo
	lastID int64
}

func (t *memoryTx) Insert(_ context.Context, todo model.Todo) (model.Todo, error) {
	t.lastID++
	todo.ID = t.lastID
	t.rows[todo.ID] = todo

	return todo, nil
}

func (t *memoryTx) Update(_ context.Context, todo model.Todo) (bool, error) {
	existing, found := t.rows[todo.ID]
	if !found {
		return false, nil
	}

	existing.Name = todo.Name
	existing.IsComplete = todo.IsComplete
	existing.ModifiedAt = todo.ModifiedAt
	t.rows[todo.ID] = existing

	return true, nil
}

func compareBy(params gDto.QueryParams) func(a, b model.Todo) int {
	desc := strings.EqualFold(params.SortDir, gDto.SortDirDesc)

	return func(a, b model.Todo) int {
		var result int

		switch params.SortBy {
		case model.FieldName:
			result = cmp.Compare(a.Name, b.Name)
		case model.FieldIsComplete:
			result = compareBool(a.IsComplete, b.IsComplete)
		default:
			result = cmp.Compare(a.ID, b.ID)
		}

		if desc {
			result = -result
		}

		if result == 0 {
			return cmp.Compare(a.ID, b.ID)
		}

		return result
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
