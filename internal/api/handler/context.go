package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/middleware"
	"github.com/taskboard/task-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A
// non-empty user id proves the middleware ran; its absence means a route
// was wired without the auth middleware — reject rather than proceed with
// an unattributed request.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get(middleware.CtxUsername).(string)
	return ports.Identity{UserID: userID, Username: username}, nil
}
