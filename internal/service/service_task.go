package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/taskquery"
	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type taskService struct {
	taskRepository store.TaskRepository

	// listCache is optional; nil disables listing cache.
	listCache store.TaskListCache

	ids       idGenerator
	validator validators.Validator

	logger *logger.Logger
}

func NewTaskService(taskRepository store.TaskRepository, listCache store.TaskListCache, ids idGenerator, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		listCache:      listCache,
		ids:            ids,
		validator:      validators.NewTaskValidator(),
		logger:         logger,
	}
}

// List returns one page of the owner's tasks. The page and the total count
// are fetched concurrently.
func (s *taskService) List(ctx context.Context, ownerID uuid.UUID, params url.Values) (models.TaskList, error) {
	spec := taskquery.Build(ownerID, params)

	page, err := s.listPage(ctx, spec)
	if err != nil {
		return models.TaskList{}, err
	}

	return models.TaskList{Data: page.Tasks, Meta: listMeta(spec, page.Total)}, nil
}

func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, in models.TaskInput) (models.Task, error) {
	in = normalizeTaskInput(in)
	if in.Title == nil {
		return models.Task{}, newValidationError(validators.ErrEmptyTitle)
	}

	tags := in.Tags.Values
	if tags == nil {
		tags = []string{}
	}

	task, err := s.taskRepository.CreateTask(ctx, models.Task{
		ID:     s.ids.Generate(),
		UserID: ownerID,
		Title:  *in.Title,
		// unrecognised values fall back to the default
		Done:    in.Done.Valid && in.Done.Value,
		DueDate: in.DueDate.Pointer(),
		Tags:    tags,
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("error creating task: %w", err)
	}
	s.invalidate(ctx, ownerID)

	return task, nil
}

func (s *taskService) Get(ctx context.Context, ownerID uuid.UUID, taskID string) (models.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.taskRepository.GetTask(ctx, ownerID, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("error getting task: %w", err)
	}

	return task, nil
}

// Update applies the provided fields of in. An unrecognised done value
// leaves done unchanged; an explicit null dueDate clears it. A patch that
// changes nothing returns the current task.
func (s *taskService) Update(ctx context.Context, ownerID uuid.UUID, taskID string, in models.TaskInput) (models.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return models.Task{}, err
	}
	in = normalizeTaskInput(in)

	update := models.TaskUpdate{
		ID:     id,
		UserID: ownerID,
		Title:  in.Title,
		Done:   in.Done.Pointer(),
	}
	if in.DueDate.Set {
		update.SetDueDate = true
		update.DueDate = in.DueDate.Pointer()
	}
	if in.Tags.Set {
		update.SetTags = true
		update.Tags = in.Tags.Values
	}

	if update.IsEmpty() {
		return s.Get(ctx, ownerID, taskID)
	}
	if err = s.validator.Validate(ctx, update, validators.FieldTaskID, validators.FieldUserID, validators.FieldTitle); err != nil {
		return models.Task{}, newValidationError(err)
	}

	task, err := s.taskRepository.UpdateTask(ctx, update)
	if err != nil {
		return models.Task{}, fmt.Errorf("error updating task: %w", err)
	}
	s.invalidate(ctx, ownerID)

	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID uuid.UUID, taskID string) (uuid.UUID, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return uuid.Nil, err
	}

	deletedID, err := s.taskRepository.DeleteTask(ctx, ownerID, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error deleting task: %w", err)
	}
	s.invalidate(ctx, ownerID)

	return deletedID, nil
}

// listPage serves the page from the cache when possible. Cache failures
// are logged and the database is used instead.
func (s *taskService) listPage(ctx context.Context, spec taskquery.Spec) (models.TaskPage, error) {
	if s.listCache == nil {
		return s.fetchPage(ctx, spec)
	}
	log := logger.FromContext(ctx)

	generation, err := s.listCache.Generation(ctx, spec.Filter.OwnerID)
	if err != nil {
		log.Warn().Err(err).Msg("task list cache unavailable")
		return s.fetchPage(ctx, spec)
	}

	page, ok, err := s.listCache.GetPage(ctx, generation, spec)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("error reading task list cache")
	case ok:
		return page, nil
	}

	page, err = s.fetchPage(ctx, spec)
	if err != nil {
		return models.TaskPage{}, err
	}
	if err = s.listCache.SetPage(ctx, generation, spec, page); err != nil {
		log.Warn().Err(err).Msg("error writing task list cache")
	}

	return page, nil
}

func (s *taskService) fetchPage(ctx context.Context, spec taskquery.Spec) (models.TaskPage, error) {
	var (
		tasks []models.Task
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepository.ListTasks(gctx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.taskRepository.CountTasks(gctx, spec.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.TaskPage{}, fmt.Errorf("error listing tasks: %w", err)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return models.TaskPage{Tasks: tasks, Total: total}, nil
}

func (s *taskService) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if s.listCache == nil {
		return
	}
	if err := s.listCache.Invalidate(ctx, ownerID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("error invalidating task list cache")
	}
}

func listMeta(spec taskquery.Spec, total int64) models.ListMeta {
	return models.ListMeta{
		Page:       spec.Page,
		Limit:      spec.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, spec.Limit),
		Sort:       spec.SortString(),
		Filter: models.ListFilter{
			Done: spec.Filter.Done,
			Tags: spec.Filter.Tags,
		},
	}
}

// totalPages is ceil(total/limit), at least 1.
func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func parseTaskID(taskID string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(taskID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, newValidationError(validators.ErrInvalidTaskID)
	}
	return id, nil
}

// normalizeTaskInput trims the title and normalizes the tags.
func normalizeTaskInput(in models.TaskInput) models.TaskInput {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if in.Tags.Set {
		in.Tags.Values = taskquery.NormalizeTags(in.Tags.Values)
	}
	return in
}
