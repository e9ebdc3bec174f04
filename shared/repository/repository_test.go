package repository_test

import (
	"context"
	"testing"
	"time"

	"todoapi/infras/otel/mocks"
	"todoapi/shared"
	gRepo "todoapi/shared/repository"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	ID       int64  `db:"id" readonly:"true"`
	Name     string `db:"name"`
	Ignored  string `db:"-"`
	Untagged string
	embedded
}

type embedded struct {
	CreatedAt time.Time `db:"created_at"`
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo := gRepo.NewRepository[sample]("sample", "samples", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"name", "created_at"}, repo.InsertColumns)
}

func TestRepository_BuildWhereClause(t *testing.T) {
	repo := gRepo.NewRepository[sample]("sample", "samples", "id", nil, mocks.NewOtel())

	where, args := repo.BuildWhereClause(context.Background(), shared.FilterByID(int64(7), "id", "samples"))

	assert.Equal(t, " WHERE (samples.id = :id) ", where)
	assert.Equal(t, map[string]any{"id": int64(7)}, args)
}
