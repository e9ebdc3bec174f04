package router

import (
	"todoapi/internal/handlers/todo"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Todo todo.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Todo.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
