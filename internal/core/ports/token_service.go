package ports

import "github.com/taskboard/task-api/internal/core/domain"

// Identity is the authenticated principal carried from the auth middleware
// into every task operation. It is resolved once per request and passed
// explicitly; nothing downstream re-derives it from ambient state.
type Identity struct {
	UserID   string
	Username string
}

// TokenService issues and validates signed, time-bounded identity tokens.
// Validate fails closed: malformed input, a bad signature, or an expired
// token all return domain.ErrInvalidToken and a zero Identity.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Validate(token string) (Identity, error)
}
