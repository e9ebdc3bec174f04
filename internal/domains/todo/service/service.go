package service

import (
	"context"
	"fmt"
	"strconv"

	"todoapi/config"
	"todoapi/infras/otel"
	"todoapi/internal/domains/todo/model"
	"todoapi/internal/domains/todo/model/dto"
	"todoapi/internal/domains/todo/repository"
	"todoapi/shared"
	"todoapi/shared/cache"
	"todoapi/shared/constant"
	gDto "todoapi/shared/dto"
	"todoapi/shared/failure"
	"todoapi/shared/logger"
	"todoapi/shared/timezone"
)

const (
	cacheGetTodo         = "todo:get"
	cacheGetAllTodo      = "todo:gets"
	cacheGetCompleteTodo = "todo:complete"
	cacheCountTodo       = "todo:count"

	notFoundMessage = "todo not found"
)

type Todo interface {
	GetAll(ctx context.Context, params gDto.QueryParams) ([]dto.TodoItem, error)
	GetComplete(ctx context.Context, params gDto.QueryParams) ([]dto.TodoItem, error)
	Count(ctx context.Context, filter model.Filter) (int, error)
	Get(ctx context.Context, id int64) (dto.TodoItem, error)
	Create(ctx context.Context, items []dto.TodoItem) ([]dto.TodoItem, error)
	Update(ctx context.Context, id int64, req dto.TodoItem) (dto.UpdateTodoResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Todo
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Todo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res []dto.TodoItem, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, cacheGetAllTodo, params, model.Filter{})
}

func (s *serviceImpl) GetComplete(ctx context.Context, params gDto.QueryParams) (res []dto.TodoItem, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetComplete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, cacheGetCompleteTodo, params, model.CompletedOnly())
}

func (s *serviceImpl) list(ctx context.Context, prefix string, params gDto.QueryParams, filter model.Filter) ([]dto.TodoItem, error) {
	var res []dto.TodoItem

	cacheKey := shared.BuildCacheKeyWithQuery(prefix, params)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil && res != nil {
		logger.FromContext(ctx).Info().Str("cacheKey", cacheKey).Msg("cache hit for todos")

		return res, nil
	}

	todos, err := s.repo.FindAll(ctx, params, filter)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get todos")

		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	res = dto.FromModels(todos)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to save todos to cache")
	}

	return res, nil
}

// Count reports how many todos match filter, ignoring pagination.
func (s *serviceImpl) Count(ctx context.Context, filter model.Filter) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheCountTodo, filter.String())

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		logger.FromContext(ctx).Info().Str("cacheKey", cacheKey).Msg("cache hit for todo count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to count todos")

		return res, fmt.Errorf("failed to count todos: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to save todo count to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TodoItem, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("todo.id", id)

	cacheKey := todoCacheKey(id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		logger.FromContext(ctx).Info().Str("cacheKey", cacheKey).Msg("cache hit for todo")

		return res, nil
	}

	todo, found, err := s.repo.Find(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get todo")

		return res, fmt.Errorf("failed to get todo: %w", err)
	}

	if !found {
		return res, failure.NotFound(notFoundMessage) // nolint:wrapcheck
	}

	res.FromModel(todo)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to save todo to cache")
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, items []dto.TodoItem) (res []dto.TodoItem, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("todo.count", len(items))

	created, err := s.repo.InsertBulk(ctx, dto.ToModels(items))
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to create todos")

		return nil, fmt.Errorf("failed to create todos: %w", err)
	}

	s.invalidateLists(ctx)

	return dto.FromModels(created), nil
}

// Update overwrites the todo and, in the same unit of work, creates a new todo named after
// the request with CreatedSuffix appended.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.TodoItem) (res dto.UpdateTodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("todo.id", id)

	current, found, err := s.repo.Find(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to check todo existence")

		return res, fmt.Errorf("failed to get todo: %w", err)
	}

	if !found {
		return res, failure.NotFound(notFoundMessage) // nolint:wrapcheck
	}

	current.Name = req.Name
	current.IsComplete = req.IsComplete
	current.ModifiedAt = timezone.Now()

	shadow := dto.TodoItem{Name: req.Name + model.CreatedSuffix, IsComplete: req.IsComplete}

	var created model.Todo

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		updated, err := tx.Update(ctx, current)
		if err != nil {
			return err
		}

		if !updated {
			return failure.NotFound(notFoundMessage)
		}

		created, err = tx.Insert(ctx, shadow.ToModel())

		return err
	})
	if err != nil {
		if failure.IsNotFound(err) {
			return res, err
		}

		logger.FromContext(ctx).Error().Err(err).Msg("failed to update todo")

		return res, fmt.Errorf("failed to update todo: %w", err)
	}

	res.Updated.FromModel(current)
	res.Created.FromModel(created)

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("todo.id", id)

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if !found {
		return failure.NotFound(notFoundMessage) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, todoCacheKey(id)); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to delete todo from cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllTodo)
	shared.InvalidateCaches(ctx, s.cache, cacheGetCompleteTodo)
	shared.InvalidateCaches(ctx, s.cache, cacheCountTodo)
}

func todoCacheKey(id int64) string {
	return shared.BuildCacheKey(cacheGetTodo, strconv.FormatInt(id, 10))
}
