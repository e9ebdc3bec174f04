package dto_test

import (
	"math"
	"net/http"
	"net/url"
	"testing"

	"todoapi/shared/constant"
	"todoapi/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "desc",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: "DESC"},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "with default request disabled and no parameters",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:           "with invalid page and negative limit",
			queryParams:    map[string]string{"page": "invalid", "limit": "-10"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "with unknown sort direction",
			queryParams: map[string]string{"sort_dir": "sideways"},
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/todoitems")
			assert.NoError(t, err)

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			assert.NoError(t, err)

			queryParams := dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, queryParams)
		})
	}
}

func TestQueryParams_Sanitize(t *testing.T) {
	q := dto.QueryParams{SortBy: "name; DROP TABLE todos"}
	q.Sanitize("id", "name")

	assert.Equal(t, constant.DefaultValueSortBy, q.SortBy)
	assert.Equal(t, constant.DefaultValueSortDir, q.SortDir)

	q = dto.QueryParams{SortBy: "name", SortDir: dto.SortDirDesc}
	q.Sanitize("id", "name")

	assert.Equal(t, "name", q.SortBy)
	assert.Equal(t, dto.SortDirDesc, q.SortDir)
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, dto.QueryParams{Page: 4611686018427387904, Limit: 3}.Offset())
	assert.Equal(t, math.MaxInt, dto.QueryParams{Page: math.MaxInt, Limit: math.MaxInt}.Offset())
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name     string
		group    dto.FilterGroup
		where    string
		expected map[string]any
	}{
		{
			name:     "empty group",
			group:    dto.FilterGroup{},
			where:    "",
			expected: map[string]any{},
		},
		{
			name: "single eq filter defaults to AND",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "is_complete", Value: true, Operator: dto.FilterOperatorEq, Table: "todos"},
			}},
			where:    "(todos.is_complete = :is_complete)",
			expected: map[string]any{"is_complete": true},
		},
		{
			name: "nested group with arg name",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "id", Value: int64(3), Operator: dto.FilterOperatorEq, Table: "todos"},
					dto.FilterGroup{
						Filters: []any{
							dto.Filter{ArgName: "done", Field: "is_complete", Value: false, Operator: dto.FilterOperatorEq},
						},
					},
				},
			},
			where: "(todos.id = :id AND (is_complete = :done))",
			expected: map[string]any{
				"id":   int64(3),
				"done": false,
			},
		},
		{
			name: "unknown operator is skipped",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "name", Value: "a", Operator: "like"},
			}},
			where:    "",
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.expected, args)
		})
	}
}
