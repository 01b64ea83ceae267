package claim

import (
	"errors"

	"github.com/driveshare/core/internal/middleware"
	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/claims", authMW)

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id/fnol", h.updateFNOL)
	g.PATCH("/:id/status", h.transition)
}

// GET /claims?status=PENDING
func (h *Handler) list(c *gin.Context) {
	hostID := middleware.CurrentHostID(c)

	var statusFilter *models.ClaimStatus
	if raw := c.Query("status"); raw != "" {
		st := models.ClaimStatus(raw)
		statusFilter = &st
	}

	items, pag, err := h.svc.ListByHost(hostID, statusFilter, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]claimResponse, len(items))
	for i := range items {
		out[i] = toResponse(&items[i])
	}
	response.Paged(c, out, pag)
}

func (h *Handler) get(c *gin.Context) {
	cl, err := h.svc.GetByID(middleware.CurrentHostID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errClaimNotFound) {
			response.NotFoundMsg(c, "claim not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(cl))
}

// PUT /claims/:id/fnol edits first-notice-of-loss details.
func (h *Handler) updateFNOL(c *gin.Context) {
	var dto UpdateFNOLDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cl, err := h.svc.UpdateFNOL(middleware.CurrentHostID(c), c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errClaimNotFound):
			response.NotFoundMsg(c, "claim not found")
		case errors.Is(err, errClaimClosed):
			response.BadRequest(c, "claim is resolved and can no longer be edited")
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}
	response.OK(c, toResponse(cl))
}

// PATCH /claims/:id/status
func (h *Handler) transition(c *gin.Context) {
	var dto TransitionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cl, err := h.svc.Transition(middleware.CurrentHostID(c), c.Param("id"), dto.Status, dto.Reason)
	if err != nil {
		if errors.Is(err, errClaimNotFound) {
			response.NotFoundMsg(c, "claim not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, toResponse(cl))
}
