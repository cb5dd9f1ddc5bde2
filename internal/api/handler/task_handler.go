package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/metrics"
	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Every method
// resolves the caller's identity from the request context first and passes
// it explicitly into the service.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		metrics.TaskOperationsTotal.WithLabelValues("list", "error").Inc()
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("list", "ok").Inc()
	return c.JSON(http.StatusOK, toTaskListResponse(tasks))
}

// Get handles GET /api/tasks/:id. A task owned by another user is
// indistinguishable from a missing one.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			metrics.TaskOperationsTotal.WithLabelValues("get", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrTaskNotFound.Error()})
		}
		metrics.TaskOperationsTotal.WithLabelValues("get", "error").Inc()
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("get", "ok").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Create handles POST /api/tasks. The new task is always owned by the
// caller; any client-supplied owner field is ignored by the schema.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.service.Create(c.Request().Context(), identity.UserID, ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		metrics.TaskOperationsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT /api/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Task id"
// @Param        body  body      taskRequest  true  "Updated task details"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.service.Update(c.Request().Context(), identity.UserID, c.Param("id"), ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			metrics.TaskOperationsTotal.WithLabelValues("update", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrTaskNotFound.Error()})
		}
		metrics.TaskOperationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			metrics.TaskOperationsTotal.WithLabelValues("delete", "not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrTaskNotFound.Error()})
		}
		metrics.TaskOperationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}
