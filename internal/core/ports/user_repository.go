package ports

import (
	"context"

	"github.com/taskboard/task-api/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
// Username uniqueness is enforced by the store itself: Create on a taken
// username returns domain.ErrUserExists even when callers pre-checked,
// so concurrent registrations cannot race past the invariant.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
