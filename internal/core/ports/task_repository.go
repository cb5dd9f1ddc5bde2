package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// TaskRepository defines the interface for task persistence.
// Lookups are by task id only; ownership checks live in the service layer.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
