package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/middleware"
	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

type stubTaskService struct {
	listFn   func(ctx context.Context, userID string) ([]domain.Task, error)
	getFn    func(ctx context.Context, userID, taskID string) (*domain.Task, error)
	createFn func(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error)
	updateFn func(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, userID, taskID string) error
}

func (s *stubTaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.listFn(ctx, userID)
}

func (s *stubTaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.getFn(ctx, userID, taskID)
}

func (s *stubTaskService) Create(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubTaskService) Update(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, userID, taskID, in)
}

func (s *stubTaskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.deleteFn(ctx, userID, taskID)
}

// newTaskContext builds an echo context carrying a resolved identity, as the
// auth middleware would have left it.
func newTaskContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "user-1")
	c.Set(middleware.CtxUsername, "alice")
	return c, rec
}

func TestTaskHandler_List(t *testing.T) {
	e := newTestEcho()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string) ([]domain.Task, error) {
			if userID != "user-1" {
				t.Fatalf("expected resolved user id, got %q", userID)
			}
			return []domain.Task{
				{ID: "task-2", Title: "b", Status: "open", CreatedAt: created, UserID: userID},
				{ID: "task-1", Title: "a", Status: "done", CreatedAt: created.Add(-time.Hour), UserID: userID},
			}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodGet, "/api/tasks", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["id"] != "task-2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string) ([]domain.Task, error) {
			return []domain.Task{}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodGet, "/api/tasks", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestTaskHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		getFn: func(ctx context.Context, userID, taskID string) (*domain.Task, error) {
			if userID != "user-1" || taskID != "task-9" {
				t.Fatalf("unexpected args: %s %s", userID, taskID)
			}
			return &domain.Task{ID: taskID, Title: "x", Status: "open", UserID: userID}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodGet, "/api/tasks/task-9", "")
	c.SetParamNames("id")
	c.SetParamValues("task-9")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "task-9" || resp["user_id"] != "user-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		getFn: func(ctx context.Context, userID, taskID string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodGet, "/api/tasks/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTaskHandler_Get_NoIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		getFn: func(ctx context.Context, userID, taskID string) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/task-9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error) {
			if userID != "user-1" {
				t.Fatalf("expected resolved user id, got %q", userID)
			}
			if in.Title != "x" || in.Description != "y" || in.Status != "open" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Task{ID: "task-1", Title: in.Title, Description: in.Description, Status: in.Status, UserID: userID}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodPost, "/api/tasks", `{"title":"x","description":"y","status":"open"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user_id"] != "user-1" {
		t.Fatalf("expected task owned by caller, got %+v", resp)
	}
}

func TestTaskHandler_Create_ClientOwnerIgnored(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error) {
			return &domain.Task{ID: "task-1", Title: in.Title, Status: in.Status, UserID: userID}, nil
		},
	}
	handler := NewTaskHandler(stub)

	// user_id in the body is not part of the schema and must be discarded.
	c, rec := newTaskContext(e, http.MethodPost, "/api/tasks", `{"title":"x","status":"open","user_id":"someone-else"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user_id"] != "user-1" {
		t.Fatalf("client-supplied owner leaked through: %+v", resp)
	}
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodPost, "/api/tasks", `{"description":"y","status":"open"}`)
	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "title is required") {
		t.Fatalf("expected validation message naming the field, got %s", rec.Body.String())
	}
}

func TestTaskHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error) {
			if taskID != "task-3" {
				t.Fatalf("unexpected task id: %s", taskID)
			}
			return &domain.Task{ID: taskID, Title: in.Title, Status: in.Status, UserID: userID}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodPut, "/api/tasks/task-3", `{"title":"x2","status":"done"}`)
	c.SetParamNames("id")
	c.SetParamValues("task-3")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodPut, "/api/tasks/task-3", `{"title":"x2","status":"done"}`)
	c.SetParamNames("id")
	c.SetParamValues("task-3")

	_ = handler.Update(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, userID, taskID string) error {
			if userID != "user-1" || taskID != "task-4" {
				t.Fatalf("unexpected args: %s %s", userID, taskID)
			}
			return nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodDelete, "/api/tasks/task-4", "")
	c.SetParamNames("id")
	c.SetParamValues("task-4")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, userID, taskID string) error {
			return domain.ErrTaskNotFound
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newTaskContext(e, http.MethodDelete, "/api/tasks/task-4", "")
	c.SetParamNames("id")
	c.SetParamValues("task-4")

	_ = handler.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
