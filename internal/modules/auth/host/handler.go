package host

import (
	"errors"

	"github.com/driveshare/core/internal/middleware"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/login", h.login)
	// Legacy portal path, kept for older host dashboard builds.
	rg.POST("/portal/login", h.login)

	a := g.Group("", authMW)
	a.POST("/logout", h.logout)
	a.GET("/profile", h.profile)
	a.PATCH("/profile", h.updateProfile)
	a.POST("/tokens", h.createToken)
	a.GET("/tokens", h.listTokens)
	a.DELETE("/tokens/:id", h.deleteToken)
}

// POST /auth/login, the portal login form posts here.
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, hostModel, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errHostNotFound) || errors.Is(err, errWrongPassword) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "host": toResponse(hostModel)})
}

func (h *Handler) logout(c *gin.Context) {
	err := h.svc.Logout(middleware.CurrentHostID(c), middleware.CurrentSessionID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) profile(c *gin.Context) {
	hostModel, err := h.svc.GetByID(middleware.CurrentHostID(c))
	if err != nil {
		if errors.Is(err, errHostNotFound) {
			response.NotFoundMsg(c, "host not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(hostModel))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	hostModel, err := h.svc.UpdateProfile(middleware.CurrentHostID(c), &dto)
	if err != nil {
		if errors.Is(err, errHostNotFound) {
			response.NotFoundMsg(c, "host not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(hostModel))
}

func (h *Handler) createToken(c *gin.Context) {
	var dto CreateTokenDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.CreateAPIToken(middleware.CurrentHostID(c), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) listTokens(c *gin.Context) {
	tokens, err := h.svc.ListAPITokens(middleware.CurrentHostID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tokens)
}

func (h *Handler) deleteToken(c *gin.Context) {
	if err := h.svc.DeleteAPIToken(middleware.CurrentHostID(c), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
