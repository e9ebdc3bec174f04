package model

import (
	"strconv"

	gDto "todoapi/shared/dto"
	"todoapi/shared/model"
)

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID         = "id"
	FieldName       = "name"
	FieldIsComplete = "is_complete"
)

// CreatedSuffix is appended to the name of the todo that every update creates next to the
// updated one.
const CreatedSuffix = " - New"

// Todo is the persisted entity. ID is assigned by the store on insert and never changes.
type Todo struct {
	ID         int64  `db:"id" readonly:"true"`
	Name       string `db:"name"`
	IsComplete bool   `db:"is_complete"`
	model.Metadata
}

// SortableFields lists the columns a caller may order todos by.
func SortableFields() []string {
	return []string{FieldID, FieldName, FieldIsComplete}
}

// Filter selects todos. A nil field matches everything.
type Filter struct {
	Completed *bool
}

// CompletedOnly matches todos whose completion flag is set.
func CompletedOnly() Filter {
	completed := true

	return Filter{Completed: &completed}
}

// Match evaluates the filter against todo in process.
func (f Filter) Match(todo Todo) bool {
	if f.Completed != nil && todo.IsComplete != *f.Completed {
		return false
	}

	return true
}

// String identifies the filter in cache keys.
func (f Filter) String() string {
	if f.Completed == nil {
		return "all"
	}

	return "completed=" + strconv.FormatBool(*f.Completed)
}

// FilterGroup renders the filter for the sql repository.
func (f Filter) FilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{}

	if f.Completed != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    FieldIsComplete,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.Completed,
			Table:    TableName,
		})
	}

	return group
}
