package dto

import (
	"fmt"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"todoapi/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams is normalized by FromRequest: non-positive or malformed numbers stay zero and
// SortDir is either empty, ASC or DESC.
type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// FromRequest populates QueryParams from the HTTP request.
// With `defaultRequest` set to true, Page and Limit fall back to the package defaults when absent,
// otherwise an absent Limit means "no pagination".
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, false)
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Sanitize drops a sort column that is not in allowed and fills the default ordering.
// SortBy ends up interpolated into SQL, so it must only ever hold a known column.
func (q *QueryParams) Sanitize(allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}

// Offset returns the number of rows skipped by the requested page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}

	return (q.Page - 1) * q.Limit
}

func (q QueryParams) String() string {
	return fmt.Sprintf("page=%d&limit=%d&sort_by=%s&sort_dir=%s", q.Page, q.Limit, q.SortBy, q.SortDir)
}
