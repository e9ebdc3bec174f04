package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"todoapi/config"
	"todoapi/infras/otel/mocks"
	"todoapi/internal/domains/todo/model"
	"todoapi/internal/domains/todo/repository"
	gDto "todoapi/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo repository.Todo, todos ...model.Todo) []model.Todo {
	t.Helper()

	created, err := repo.InsertBulk(context.Background(), todos)
	require.NoError(t, err)

	return created
}

func TestNew_SelectsMemoryByDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverMemory

	repo := repository.New(cfg, nil, mocks.NewOtel())

	created := seed(t, repo, model.Todo{Name: "a"})
	assert.Equal(t, int64(1), created[0].ID)
}

func TestMemory_InsertBulk(t *testing.T) {
	repo := repository.NewMemory(mocks.NewOtel())

	created := seed(t, repo, model.Todo{Name: "a"}, model.Todo{Name: "b", IsComplete: true})

	require.Len(t, created, 2)
	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, "a", created[0].Name)
	assert.Equal(t, int64(2), created[1].ID)
	assert.True(t, created[1].IsComplete)

	empty, err := repo.InsertBulk(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemory_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(mocks.NewOtel())

	seed(t, repo, model.Todo{Name: "a"}, model.Todo{Name: "b"})

	found, err := repo.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, found)

	created := seed(t, repo, model.Todo{Name: "c"})
	assert.Equal(t, int64(3), created[0].ID)
}

func TestMemory_Find(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(mocks.NewOtel())
	seed(t, repo, model.Todo{Name: "a"})

	todo, found, err := repo.Find(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a", todo.Name)

	_, found, err = repo.Find(ctx, 42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(mocks.NewOtel())
	seed(t, repo,
		model.Todo{Name: "c"},
		model.Todo{Name: "a", IsComplete: true},
		model.Todo{Name: "b", IsComplete: true},
	)

	tests := []struct {
		name     string
		params   gDto.QueryParams
		filter   model.Filter
		expected []int64
	}{
		{
			name:     "defaults to id order",
			expected: []int64{1, 2, 3},
		},
		{
			name:     "completed only",
			filter:   model.CompletedOnly(),
			expected: []int64{2, 3},
		},
		{
			name:     "sorted by name descending",
			params:   gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirDesc},
			expected: []int64{1, 3, 2},
		},
		{
			name:     "second page",
			params:   gDto.QueryParams{Page: 2, Limit: 2},
			expected: []int64{3},
		},
		{
			name:     "page past the end",
			params:   gDto.QueryParams{Page: 5, Limit: 2},
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos, err := repo.FindAll(ctx, tt.params, tt.filter)
			require.NoError(t, err)

			ids := make([]int64, 0, len(todos))
			for _, todo := range todos {
				ids = append(ids, todo.ID)
			}

			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestMemory_Count(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(mocks.NewOtel())
	seed(t, repo, model.Todo{Name: "a"}, model.Todo{Name: "b", IsComplete: true})

	total, err := repo.Count(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	completed, err := repo.Count(ctx, model.CompletedOnly())
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

func TestMemory_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits update and insert together", func(t *testing.T) {
		repo := repository.NewMemory(mocks.NewOtel())
		seed(t, repo, model.Todo{Name: "a"})

		err := repo.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			found, err := tx.Update(ctx, model.Todo{ID: 1, Name: "b", IsComplete: true})
			if err != nil || !found {
				return errors.New("update failed")
			}

			created, err := tx.Insert(ctx, model.Todo{Name: "b - New"})
			assert.Equal(t, int64(2), created.ID)

			return err
		})
		require.NoError(t, err)

		todo, _, _ := repo.Find(ctx, 1)
		assert.Equal(t, "b", todo.Name)
		assert.True(t, todo.IsComplete)

		todo, found, _ := repo.Find(ctx, 2)
		assert.True(t, found)
		assert.Equal(t, "b - New", todo.Name)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		repo := repository.NewMemory(mocks.NewOtel())
		seed(t, repo, model.Todo{Name: "a"})

		errBoom := errors.New("boom")
		err := repo.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			_, _ = tx.Update(ctx, model.Todo{ID: 1, Name: "changed"})
			_, _ = tx.Insert(ctx, model.Todo{Name: "extra"})

			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)

		todo, _, _ := repo.Find(ctx, 1)
		assert.Equal(t, "a", todo.Name)

		total, _ := repo.Count(ctx, model.Filter{})
		assert.Equal(t, 1, total)

		created := seed(t, repo, model.Todo{Name: "next"})
		assert.Equal(t, int64(3), created[0].ID)
	})

	t.Run("update of missing todo reports not found", func(t *testing.T) {
		repo := repository.NewMemory(mocks.NewOtel())

		err := repo.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			found, err := tx.Update(ctx, model.Todo{ID: 9, Name: "x"})
			assert.False(t, found)

			return err
		})
		require.NoError(t, err)
	})
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(mocks.NewOtel())
	seed(t, repo, model.Todo{Name: "a"})

	found, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_ConcurrentInserts(t *testing.T) {
	repo := repository.NewMemory(mocks.NewOtel())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.InsertBulk(context.Background(), []model.Todo{{Name: "x"}})
		}()
	}
	wg.Wait()

	todos, err := repo.FindAll(context.Background(), gDto.QueryParams{}, model.Filter{})
	require.NoError(t, err)
	require.Len(t, todos, 50)

	for i, todo := range todos {
		assert.Equal(t, int64(i+1), todo.ID)
	}
}
