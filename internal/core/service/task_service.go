package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

// TaskCache abstracts the read cache for task-by-id lookups (Redis).
// Get returns (nil, nil) on a miss. Cache failures are soft: the service
// logs them and falls back to the repository.
type TaskCache interface {
	Get(ctx context.Context, taskID string) (*domain.Task, error)
	Set(ctx context.Context, task *domain.Task) error
	Invalidate(ctx context.Context, taskID string) error
}

// TaskService implements owner-scoped task CRUD. Every lookup that crosses
// an ownership boundary is reported as not-found, so callers cannot probe
// for the existence of other users' tasks.
type TaskService struct {
	repo   ports.TaskRepository
	cache  TaskCache
	logger zerolog.Logger
}

// NewTaskService returns a TaskService. cache may be nil, in which case all
// reads go straight to the repository.
func NewTaskService(repo ports.TaskRepository, cache TaskCache, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, cache: cache, logger: logger}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.lookup(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// Create persists a new task owned by the resolved identity. Ownership is
// assigned here, never taken from client input.
func (s *TaskService) Create(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error) {
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		CreatedAt:   time.Now().UTC(),
		UserID:      userID,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("user_id", userID).Msg("task created")
	return created, nil
}

// Update mutates title/description/status of an owned task. The creation
// timestamp and owner are never touched.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Status = in.Status

	if err := s.repo.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to update task")
		return nil, err
	}
	s.evict(ctx, taskID)

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to delete task")
		return err
	}
	s.evict(ctx, taskID)

	s.logger.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task deleted")
	return nil
}

// lookup fetches a task by id through the cache. The ownership check always
// runs on the returned record, so a cached task is no easier to reach
// cross-owner than an uncached one.
func (s *TaskService) lookup(ctx context.Context, taskID string) (*domain.Task, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, taskID)
		if err != nil {
			s.logger.Warn().Err(err).Str("task_id", taskID).Msg("task cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, task); err != nil {
			s.logger.Warn().Err(err).Str("task_id", taskID).Msg("task cache write failed")
		}
	}
	return task, nil
}

func (s *TaskService) evict(ctx context.Context, taskID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, taskID); err != nil {
		s.logger.Warn().Err(err).Str("task_id", taskID).Msg("task cache invalidation failed")
	}
}
