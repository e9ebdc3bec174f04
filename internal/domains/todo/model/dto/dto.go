package dto

import (
	"todoapi/internal/domains/todo/model"
	gModel "todoapi/shared/model"
	"todoapi/shared/timezone"
)

// TodoItem is the wire form of a todo. It mirrors model.Todo on purpose as a separate type
// so the table can grow columns without changing the public contract.
type TodoItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"       validate:"max=255"`
	IsComplete bool   `json:"isComplete"`
}

// ToModel builds a new todo from the item. The item's ID is ignored: the store assigns one.
func (t *TodoItem) ToModel() model.Todo {
	now := timezone.Now()

	return model.Todo{
		Name:       t.Name,
		IsComplete: t.IsComplete,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

func (t *TodoItem) FromModel(todo model.Todo) {
	t.ID = todo.ID
	t.Name = todo.Name
	t.IsComplete = todo.IsComplete
}

// FromModels converts todos preserving order. It never returns nil so an empty list
// serializes as [].
func FromModels(todos []model.Todo) []TodoItem {
	items := make([]TodoItem, len(todos))
	for i, todo := range todos {
		items[i].FromModel(todo)
	}

	return items
}

// ToModels builds new todos from items, ignoring every client supplied ID.
func ToModels(items []TodoItem) []model.Todo {
	todos := make([]model.Todo, len(items))
	for i := range items {
		todos[i] = items[i].ToModel()
	}

	return todos
}

// UpdateTodoResponse pairs the updated todo with the todo created alongside it.
type UpdateTodoResponse struct {
	Updated TodoItem `json:"Updated"`
	Created TodoItem `json:"Created"`
}
