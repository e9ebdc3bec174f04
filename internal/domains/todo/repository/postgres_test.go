package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"todoapi/infras/otel/mocks"
	"todoapi/infras/postgres"
	"todoapi/internal/domains/todo/model"
	"todoapi/internal/domains/todo/repository"
	gDto "todoapi/shared/dto"
	sModel "todoapi/shared/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectTodos = "SELECT todos.id, todos.name, todos.is_complete, todos.created_at, todos.modified_at FROM todos"
	insertTodo  = "INSERT INTO todos (name, is_complete, created_at, modified_at) VALUES ($1, $2, $3, $4) RETURNING id"
	updateTodo  = "UPDATE todos SET is_complete = $1, modified_at = $2, name = $3 WHERE (todos.id = $4)"
)

var errConnection = errors.New("connection reset")

// sameStatement compares statements ignoring runs of whitespace.
var sameStatement = sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
	expected := strings.Join(strings.Fields(expectedSQL), " ")
	actual := strings.Join(strings.Fields(actualSQL), " ")

	if expected != actual {
		return fmt.Errorf("query %q does not match %q", actual, expected)
	}

	return nil
})

func newPostgres(t *testing.T) (repository.Todo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sameStatement))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())

		mock.ExpectClose()
		assert.NoError(t, db.Close())
	})

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewPostgres(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func todoRows(todos ...model.Todo) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "is_complete", "created_at", "modified_at"})
	for _, todo := range todos {
		rows.AddRow(todo.ID, todo.Name, todo.IsComplete, todo.CreatedAt, todo.ModifiedAt)
	}

	return rows
}

func TestPostgres_Find(t *testing.T) {
	stamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	stored := model.Todo{ID: 7, Name: "walk dog", IsComplete: true, Metadata: sModel.Metadata{CreatedAt: stamp, ModifiedAt: stamp}}

	t.Run("found", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectPrepare(selectTodos + " WHERE (todos.id = $1) LIMIT 1").
			ExpectQuery().
			WithArgs(int64(7)).
			WillReturnRows(todoRows(stored))

		todo, found, err := repo.Find(context.Background(), 7)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, stored, todo)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectPrepare(selectTodos + " WHERE (todos.id = $1) LIMIT 1").
			ExpectQuery().
			WithArgs(int64(0)).
			WillReturnRows(todoRows())

		_, found, err := repo.Find(context.Background(), 0)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectPrepare(selectTodos + " WHERE (todos.id = $1) LIMIT 1").
			ExpectQuery().
			WithArgs(int64(7)).
			WillReturnError(errConnection)

		_, found, err := repo.Find(context.Background(), 7)

		assert.ErrorIs(t, err, errConnection)
		assert.False(t, found)
	})
}

func TestPostgres_FindAll(t *testing.T) {
	tests := []struct {
		name   string
		params gDto.QueryParams
		filter model.Filter
		query  string
		args   []driver.Value
	}{
		{
			name:  "every todo in id order",
			query: selectTodos + " ORDER BY todos.id ASC",
		},
		{
			name:   "completed page sorted by name",
			params: gDto.QueryParams{Page: 2, Limit: 3, SortBy: model.FieldName, SortDir: gDto.SortDirDesc},
			filter: model.CompletedOnly(),
			query: selectTodos + " WHERE (todos.is_complete = $1)" +
				" ORDER BY todos.name DESC, todos.id ASC LIMIT $2 OFFSET $3",
			args: []driver.Value{true, int64(3), int64(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newPostgres(t)

			query := mock.ExpectPrepare(tt.query).ExpectQuery()
			if len(tt.args) > 0 {
				query.WithArgs(tt.args...)
			}

			query.WillReturnRows(todoRows(model.Todo{ID: 1, Name: "a", IsComplete: true}))

			todos, err := repo.FindAll(context.Background(), tt.params, tt.filter)

			require.NoError(t, err)
			require.Len(t, todos, 1)
			assert.Equal(t, int64(1), todos[0].ID)
		})
	}
}

func TestPostgres_Count(t *testing.T) {
	repo, mock := newPostgres(t)

	mock.ExpectPrepare("SELECT COUNT(todos.id) FROM todos WHERE (todos.is_complete = $1)").
		ExpectQuery().
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Count(context.Background(), model.CompletedOnly())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPostgres_InsertBulk(t *testing.T) {
	t.Run("assigns returned ids in order", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectBegin()
		mock.ExpectQuery(insertTodo).
			WithArgs("a", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(insertTodo).
			WithArgs("b", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		created, err := repo.InsertBulk(context.Background(), []model.Todo{{Name: "a"}, {Name: "b", IsComplete: true}})

		require.NoError(t, err)
		assert.Equal(t, []model.Todo{{ID: 1, Name: "a"}, {ID: 2, Name: "b", IsComplete: true}}, created)
	})

	t.Run("rolls back when one insert fails", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectBegin()
		mock.ExpectQuery(insertTodo).
			WithArgs("a", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(insertTodo).
			WithArgs("b", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errConnection)
		mock.ExpectRollback()

		created, err := repo.InsertBulk(context.Background(), []model.Todo{{Name: "a"}, {Name: "b"}})

		assert.ErrorIs(t, err, errConnection)
		assert.Nil(t, created)
	})

	t.Run("empty batch touches nothing", func(t *testing.T) {
		repo, _ := newPostgres(t)

		created, err := repo.InsertBulk(context.Background(), []model.Todo{})

		require.NoError(t, err)
		assert.Empty(t, created)
	})
}

func TestPostgres_WithinTx(t *testing.T) {
	update := model.Todo{ID: 5, Name: "x", IsComplete: true}
	shadow := model.Todo{Name: "x" + model.CreatedSuffix, IsComplete: true}

	updateAndCreate := func(ctx context.Context, tx repository.Tx) (created model.Todo, found bool, err error) {
		if found, err = tx.Update(ctx, update); err != nil || !found {
			return created, found, err
		}

		created, err = tx.Insert(ctx, shadow)

		return created, found, err
	}

	t.Run("commits update and insert", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectBegin()
		mock.ExpectExec(updateTodo).
			WithArgs(true, sqlmock.AnyArg(), "x", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(insertTodo).
			WithArgs("x - New", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectCommit()

		var created model.Todo

		err := repo.WithinTx(context.Background(), func(ctx context.Context, tx repository.Tx) error {
			var err error
			created, _, err = updateAndCreate(ctx, tx)

			return err
		})

		require.NoError(t, err)
		assert.Equal(t, int64(12), created.ID)
		assert.Equal(t, "x - New", created.Name)
	})

	t.Run("rolls back the update when the insert fails", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectBegin()
		mock.ExpectExec(updateTodo).
			WithArgs(true, sqlmock.AnyArg(), "x", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(insertTodo).
			WithArgs("x - New", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errConnection)
		mock.ExpectRollback()

		err := repo.WithinTx(context.Background(), func(ctx context.Context, tx repository.Tx) error {
			_, _, err := updateAndCreate(ctx, tx)

			return err
		})

		assert.ErrorIs(t, err, errConnection)
	})

	t.Run("no affected row reports missing", func(t *testing.T) {
		repo, mock := newPostgres(t)

		mock.ExpectBegin()
		mock.ExpectExec(updateTodo).
			WithArgs(true, sqlmock.AnyArg(), "x", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		var found bool

		err := repo.WithinTx(context.Background(), func(ctx context.Context, tx repository.Tx) error {
			var err error
			_, found, err = updateAndCreate(ctx, tx)

			return err
		})

		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestPostgres_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		found    bool
	}{
		{name: "removed", affected: 1, found: true},
		{name: "missing", affected: 0, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newPostgres(t)

			mock.ExpectExec("DELETE FROM todos WHERE (todos.id = $1)").
				WithArgs(int64(9)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			found, err := repo.Delete(context.Background(), 9)

			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
		})
	}
}
