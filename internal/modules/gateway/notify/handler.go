package notify

import (
	"github.com/driveshare/core/internal/middleware"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/notifications", authMW)

	g.GET("", h.list)
	g.GET("/unread-count", h.unreadCount)
	g.PATCH("/:id/read", h.markRead)
	g.DELETE("/:id", h.dismiss)
	g.DELETE("", h.dismissAll)
}

// GET /notifications, polled by the bell dropdown.
func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.ListForHost(middleware.CurrentHostID(c), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) unreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(middleware.CurrentHostID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

func (h *Handler) markRead(c *gin.Context) {
	if err := h.svc.MarkRead(middleware.CurrentHostID(c), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) dismiss(c *gin.Context) {
	if err := h.svc.Dismiss(middleware.CurrentHostID(c), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) dismissAll(c *gin.Context) {
	dismissed, err := h.svc.DismissAll(middleware.CurrentHostID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"dismissed": dismissed})
}
