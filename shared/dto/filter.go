package dto

import (
	"fmt"
	"maps"
	"strings"
)

const FilterOperatorEq = "eq"

// Filter renders a single named-parameter predicate for sqlx.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	if f.Operator != FilterOperatorEq {
		return "", args
	}

	column := f.Field
	if f.Table != "" {
		column = fmt.Sprintf("%s.%s", f.Table, f.Field)
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	args[argName] = f.Value

	return fmt.Sprintf("%s = :%s", column, argName), args
}

// FilterGroup ANDs its Filters, each either a Filter or a nested FilterGroup.
type FilterGroup struct {
	Filters []any
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " AND ")), args
}
