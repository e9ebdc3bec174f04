package todo

import (
	"context"
	"net/http"
	"strconv"

	"todoapi/infras/otel"
	"todoapi/internal/domains/todo/model"
	"todoapi/internal/domains/todo/model/dto"
	"todoapi/internal/domains/todo/service"
	"todoapi/shared"
	"todoapi/shared/constant"
	gDto "todoapi/shared/dto"
	"todoapi/shared/logger"
	"todoapi/shared/validator"
	"todoapi/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const (
	basePath = "/todoitems"
	location = basePath + "/"
)

type Handler struct {
	service service.Todo
	otel    otel.Otel
}

func New(service service.Todo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route(basePath, func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Get("/complete", handler.GetCompleteTodos)
		routerGroup.Get("/{id}", handler.GetTodo)
		routerGroup.Post("/", handler.CreateTodos)
		routerGroup.Put("/{id}", handler.UpdateTodo)
		routerGroup.Delete("/{id}", handler.DeleteTodo)
	})
}

// GetTodos lists every todo.
// @Summary List todo items
// @Description Retrieve every todo item ordered by id. Pagination is optional.
// @Tags Todo
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort column (id, name, is_complete)"
// @Param sort_dir query string false "Sort direction (ASC, DESC)"
// @Success 200 {array} dto.TodoItem
// @Header 200 {integer} X-Total-Count "Number of todo items ignoring pagination"
// @Failure 500 {object} response.Error
// @Router /todoitems [get]
func (handler *Handler) GetTodos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	todos, err := handler.service.GetAll(ctx, queryParams(request))
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get todos")

		response.WithError(writer, err)

		return
	}

	if err = handler.setTotalCount(ctx, writer, model.Filter{}); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todos)
}

// GetCompleteTodos lists the todos marked complete.
// @Summary List completed todo items
// @Tags Todo
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} dto.TodoItem
// @Header 200 {integer} X-Total-Count "Number of completed todo items ignoring pagination"
// @Failure 500 {object} response.Error
// @Router /todoitems/complete [get]
func (handler *Handler) GetCompleteTodos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCompleteTodos")
	defer scope.End()

	todos, err := handler.service.GetComplete(ctx, queryParams(request))
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get complete todos")

		response.WithError(writer, err)

		return
	}

	if err = handler.setTotalCount(ctx, writer, model.CompletedOnly()); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todos)
}

// GetTodo retrieves a todo item by its ID.
// @Summary Get a todo item by ID
// @Tags Todo
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoItem
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todoitems/{id} [get]
func (handler *Handler) GetTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodo")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	todo, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to get todo")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todo)
}

// CreateTodos stores a batch of todo items.
// @Summary Create todo items
// @Description Create every item of the array in one unit of work. Client supplied ids are ignored.
// @Tags Todo
// @Accept json
// @Produce json
// @Param request body []dto.TodoItem true "Todo items"
// @Success 201 {array} dto.TodoItem
// @Header 201 {string} Location "/todoitems/"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todoitems [post]
func (handler *Handler) CreateTodos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodos")
	defer scope.End()

	var req []dto.TodoItem

	if err := validator.ValidateList(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	todos, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to create todos")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todos created successfully")

	response.WithCreated(writer, location, todos)
}

// UpdateTodo overwrites a todo item and creates a companion item named after it.
// @Summary Update a todo item
// @Description Overwrite name and completion of the item and create a new item named "<name> - New".
// @Tags Todo
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param request body dto.TodoItem true "Todo item"
// @Success 200 {object} dto.UpdateTodoResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todoitems/{id} [put]
func (handler *Handler) UpdateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.TodoItem{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to update todo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteTodo removes a todo item by its ID.
// @Summary Delete a todo item
// @Tags Todo
// @Param id path int true "Todo ID"
// @Success 204
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todoitems/{id} [delete]
func (handler *Handler) DeleteTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to delete todo")

		response.WithError(writer, err)

		return
	}

	response.WithNoContent(writer)
}

func (handler *Handler) setTotalCount(ctx context.Context, writer http.ResponseWriter, filter model.Filter) error {
	total, err := handler.service.Count(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to count todos")

		return err
	}

	writer.Header().Set(constant.RequestHeaderTotalCount, strconv.Itoa(total))

	return nil
}

func queryParams(request *http.Request) gDto.QueryParams {
	params := gDto.QueryParams{}
	params.FromRequest(request, false)
	params.Sanitize(model.SortableFields()...)

	return params
}
