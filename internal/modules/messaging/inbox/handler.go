package inbox

import (
	"errors"

	"github.com/driveshare/core/internal/middleware"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/inbox", authMW)

	g.GET("/threads", h.listThreads)
	g.GET("/threads/:id", h.getThread)
	g.POST("/threads/:id/messages", h.sendMessage)
	g.POST("/threads/:id/read", h.markRead)
	g.POST("/threads/:id/archive", h.archive)
	g.POST("/threads/:id/unarchive", h.unarchive)
	g.GET("/unread-count", h.unreadCount)
}

// GET /inbox/threads?archived=1
func (h *Handler) listThreads(c *gin.Context) {
	includeArchived := c.Query("archived") == "1"
	items, pag, err := h.svc.ListThreads(middleware.CurrentHostID(c), includeArchived, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) getThread(c *gin.Context) {
	t, err := h.svc.GetThread(middleware.CurrentHostID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errThreadNotFound) {
			response.NotFoundMsg(c, "thread not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, t)
}

func (h *Handler) sendMessage(c *gin.Context) {
	var dto SendMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.SendMessage(middleware.CurrentHostID(c), c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, errThreadNotFound) {
			response.NotFoundMsg(c, "thread not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) markRead(c *gin.Context) {
	if err := h.svc.MarkThreadRead(middleware.CurrentHostID(c), c.Param("id")); err != nil {
		if errors.Is(err, errThreadNotFound) {
			response.NotFoundMsg(c, "thread not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) archive(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *Handler) unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *Handler) setArchived(c *gin.Context, archived bool) {
	if err := h.svc.SetArchived(middleware.CurrentHostID(c), c.Param("id"), archived); err != nil {
		if errors.Is(err, errThreadNotFound) {
			response.NotFoundMsg(c, "thread not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) unreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(middleware.CurrentHostID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}
