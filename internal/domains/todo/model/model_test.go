package model_test

import (
	"testing"

	"todoapi/internal/domains/todo/model"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Match(t *testing.T) {
	open := model.Todo{ID: 1, Name: "a"}
	done := model.Todo{ID: 2, Name: "b", IsComplete: true}

	assert.True(t, model.Filter{}.Match(open))
	assert.True(t, model.Filter{}.Match(done))

	assert.False(t, model.CompletedOnly().Match(open))
	assert.True(t, model.CompletedOnly().Match(done))
}

func TestFilter_FilterGroup(t *testing.T) {
	group := model.Filter{}.FilterGroup()
	where, _ := group.GetWhereClause()
	assert.Empty(t, where)

	group = model.CompletedOnly().FilterGroup()
	where, args := group.GetWhereClause()
	assert.Equal(t, "(todos.is_complete = :is_complete)", where)
	assert.Equal(t, map[string]any{"is_complete": true}, args)
}
