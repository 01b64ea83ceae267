package activity

import (
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/activities", authMW)
	g.GET("", h.list)
}

// GET /activities?entity_type=vehicle&entity_id=...
func (h *Handler) list(c *gin.Context) {
	entityType := c.Query("entity_type")
	entityID := c.Query("entity_id")
	if entityType == "" || entityID == "" {
		response.BadRequest(c, "entity_type and entity_id are required")
		return
	}
	items, pag, err := h.svc.ListForEntity(entityType, entityID, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}
