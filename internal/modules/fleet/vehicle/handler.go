package vehicle

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
	g := rg.Group("/vehicles", authMW)

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.PATCH("/:id/active", h.setActive)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(middleware.CurrentHostID(c), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) get(c *gin.Context) {
	detail, err := h.svc.Get(middleware.CurrentHostID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errNotFound) {
			response.NotFoundMsg(c, "vehicle not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, detail)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateVehicleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	v, _, err := h.svc.Update(middleware.CurrentHostID(c), c.Param("id"), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, v)
}

func (h *Handler) setActive(c *gin.Context) {
	var dto SetActiveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	v, err := h.svc.SetActive(middleware.CurrentHostID(c), c.Param("id"), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, v)
}

func (h *Handler) delete(c *gin.Context) {
	outcome, err := h.svc.Delete(middleware.CurrentHostID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, outcome)
}

// writeError maps service errors onto the wire taxonomy. Claim-blocked
// responses carry structured metadata so clients can render the reason.
func (h *Handler) writeError(c *gin.Context, err error) {
	var blocked *ClaimBlockedError
	switch {
	case errors.As(err, &blocked):
		extra := gin.H{
			"reason":      "open_claim",
			"claim_count": blocked.Lock.ClaimCount,
		}
		if ac := blocked.Lock.ActiveClaim; ac != nil {
			claimInfo := gin.H{"type": ac.Type, "status": ac.Status}
			if ac.Booking != nil {
				claimInfo["booking_code"] = ac.Booking.Code
			}
			extra["active_claim"] = claimInfo
		}
		response.ForbiddenData(c, "an open claim blocks this action", extra)
	case errors.Is(err, errNotFound):
		response.NotFoundMsg(c, "vehicle not found")
	case errors.Is(err, errNoEditCalendar):
		response.ForbiddenMsg(c, "your account may not edit calendar settings")
	case errors.Is(err, errRateOutOfBounds):
		response.BadRequest(c, "daily rate is outside the allowed range for your account")
	case errors.Is(err, errActiveBookings):
		response.BadRequest(c, "cannot do that while the vehicle has active bookings")
	case errors.Is(err, errStaleVersion):
		response.Conflict(c, "vehicle was modified by someone else, reload and retry")
	default:
		response.InternalError(c, err)
	}
}
