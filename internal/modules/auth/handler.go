package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shamiri-institute/supervisor-core/internal/middleware"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/login", h.login)
	g.GET("/me", authMW, h.me)
}

type loginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, supervisor, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"token":      token,
		"supervisor": supervisor,
	})
}

// GET /auth/me
func (h *Handler) me(c *gin.Context) {
	supervisor, err := h.svc.GetSupervisor(middleware.CurrentSupervisorID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, supervisor)
}
