package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	pkgredis "github.com/driveshare/core/internal/pkg/redis"
	"github.com/driveshare/core/internal/pkg/taskqueue"
)

func newTestRouter(t *testing.T) (*gin.Engine, *taskqueue.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rc, err := pkgredis.Connect("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	svc := taskqueue.NewService(rc)

	r := gin.New()
	passthrough := func(c *gin.Context) { c.Next() }
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), passthrough)
	return r, svc
}

func TestListTasks(t *testing.T) {
	r, svc := newTestRouter(t)

	task, err := svc.Enqueue(context.Background(), "admin_notify", map[string]interface{}{"notification_id": "n1"}, "", "CAR_DELETED")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?type=admin_notify", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Pagination.Total != 1 || len(body.Data) != 1 || body.Data[0].ID != task.ID {
		t.Fatalf("unexpected list body: %s", w.Body.String())
	}
}

func TestGetTaskNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/does-not-exist", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRetryTask(t *testing.T) {
	r, svc := newTestRouter(t)
	ctx := context.Background()

	task, err := svc.Enqueue(ctx, "admin_notify", map[string]interface{}{"notification_id": "n1"}, "", "")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := svc.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, "push timeout"); err != nil {
		t.Fatalf("fail task: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/"+task.ID+"/retry", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var fresh taskqueue.Task
	if err := json.Unmarshal(w.Body.Bytes(), &fresh); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fresh.ID == task.ID || fresh.Type != "admin_notify" || fresh.Status != taskqueue.TaskPending {
		t.Fatalf("unexpected retried task: %+v", fresh)
	}
}
