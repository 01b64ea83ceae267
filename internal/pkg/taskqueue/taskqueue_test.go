package taskqueue

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	pkgredis "github.com/driveshare/core/internal/pkg/redis"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := pkgredis.Connect("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	return NewService(rc)
}

func TestEnqueueTrail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Enqueue(ctx, "admin_notify", map[string]interface{}{"notification_id": "n1"}, "", "CAR_DELETED")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if task.Status != TaskPending {
		t.Fatalf("status = %q, want %q", task.Status, TaskPending)
	}

	if err := svc.UpdateStatus(ctx, task.ID, TaskRunning, nil, ""); err != nil {
		t.Fatalf("mark running: %v", err)
	}
	if err := svc.UpdateStatus(ctx, task.ID, TaskCompleted, map[string]interface{}{"pushed": true}, ""); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	got, err := svc.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Status != TaskCompleted {
		t.Fatalf("got %+v, want completed task", got)
	}
	if len(got.Result) == 0 {
		t.Fatal("expected a stored result")
	}
}

func TestEnqueueDedup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Enqueue(ctx, "mail_send", nil, "host-1", "")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	second, err := svc.Enqueue(ctx, "mail_send", nil, "host-1", "")
	if err != nil {
		t.Fatalf("enqueue dup: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("dedup returned a new task: %s vs %s", second.ID, first.ID)
	}

	// Finishing the task releases the dedup key.
	if err := svc.UpdateStatus(ctx, first.ID, TaskCompleted, nil, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	third, err := svc.Enqueue(ctx, "mail_send", nil, "host-1", "")
	if err != nil {
		t.Fatalf("enqueue after complete: %v", err)
	}
	if third.ID == first.ID {
		t.Fatal("expected a fresh task after completion")
	}
}

func TestListFiltersAndCancel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Enqueue(ctx, "admin_notify", nil, "", "")
	b, _ := svc.Enqueue(ctx, "mail_send", nil, "", "")

	typ := "admin_notify"
	items, total, err := svc.List(ctx, 1, 10, &typ, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != a.ID {
		t.Fatalf("type filter returned %d/%d items", len(items), total)
	}

	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err == nil {
		t.Fatal("expected error cancelling a cancelled task")
	}

	st := TaskCancelled
	items, total, err = svc.List(ctx, 1, 10, nil, &st)
	if err != nil {
		t.Fatalf("list cancelled: %v", err)
	}
	if total != 1 || items[0].ID != b.ID {
		t.Fatalf("status filter returned %d items", total)
	}
}

func TestDeleteCompleted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	done, _ := svc.Enqueue(ctx, "admin_notify", nil, "", "")
	pending, _ := svc.Enqueue(ctx, "admin_notify", nil, "", "")
	if err := svc.UpdateStatus(ctx, done.ID, TaskCompleted, nil, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := svc.DeleteCompleted(ctx, 0); err != nil {
		t.Fatalf("delete completed: %v", err)
	}

	if got, _ := svc.GetByID(ctx, done.ID); got != nil {
		t.Fatal("completed task should be purged")
	}
	if got, _ := svc.GetByID(ctx, pending.ID); got == nil {
		t.Fatal("pending task should survive the purge")
	}
}
