package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// TaskInput carries the client-mutable task fields. Ownership is never part
// of the input: it is always taken from the resolved identity.
type TaskInput struct {
	Title       string
	Description string
	Status      string
}

// TaskService implements owner-scoped task operations. Every method takes
// the resolved user id explicitly; a task owned by someone else behaves
// exactly like a task that does not exist.
type TaskService interface {
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Create(ctx context.Context, userID string, in TaskInput) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID string, in TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}
