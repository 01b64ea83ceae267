package tasks

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/driveshare/core/internal/pkg/taskqueue"
)

// Handler exposes the background task trail for the admin dashboard.
type Handler struct {
	svc *taskqueue.Service
}

func NewHandler(svc *taskqueue.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tasks", authMW)
	g.GET("", h.listTasks)
	g.GET("/:taskId", h.getTask)
	g.POST("/:taskId/cancel", h.cancelTask)
	g.POST("/:taskId/retry", h.retryTask)
	g.DELETE("/:taskId", h.deleteTask)
	g.DELETE("", h.deleteCompleted)
}

// GET /tasks?type=&status=&page=&size=
func (h *Handler) listTasks(c *gin.Context) {
	q := pagination.FromContext(c)

	var taskType *string
	if t := c.Query("type"); t != "" {
		taskType = &t
	}
	var status *taskqueue.TaskStatus
	if s := c.Query("status"); s != "" {
		st := taskqueue.TaskStatus(s)
		status = &st
	}

	items, total, err := h.svc.List(c.Request.Context(), q.Page, q.Size, taskType, status)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	response.Paged(c, items, response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	})
}

// GET /tasks/:taskId
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.GetByID(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, task)
}

// POST /tasks/:taskId/cancel
func (h *Handler) cancelTask(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), c.Param("taskId")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"cancelled": true})
}

// POST /tasks/:taskId/retry re-enqueues a finished task with the same type
// and payload. The dedup key is cleared so the retry is never swallowed.
func (h *Handler) retryTask(c *gin.Context) {
	old, err := h.svc.GetByID(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if old == nil {
		response.NotFound(c)
		return
	}

	var payload interface{}
	if len(old.Payload) > 0 {
		if err := json.Unmarshal(old.Payload, &payload); err != nil {
			response.BadRequest(c, "task payload is not valid JSON")
			return
		}
	}

	task, err := h.svc.Enqueue(c.Request.Context(), old.Type, payload, "", old.GroupKey)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, task)
}

// DELETE /tasks/:taskId
func (h *Handler) deleteTask(c *gin.Context) {
	if err := h.svc.DeleteByID(c.Request.Context(), c.Param("taskId")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /tasks?before=<unix_ms> purges completed tasks; before=0 purges all.
func (h *Handler) deleteCompleted(c *gin.Context) {
	before, err := strconv.ParseInt(c.DefaultQuery("before", "0"), 10, 64)
	if err != nil {
		response.BadRequest(c, "before must be a unix millisecond timestamp")
		return
	}

	if err := h.svc.DeleteCompleted(c.Request.Context(), before); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
