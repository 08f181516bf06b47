package review

import (
	"github.com/gin-gonic/gin"
	"github.com/shamiri-institute/supervisor-core/internal/middleware"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/sessions", authMW)

	g.POST("/:id/review", h.submit)
}

// POST /sessions/:id/review
func (h *Handler) submit(c *gin.Context) {
	var dto SubmitReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rev, err := h.svc.Submit(c.Param("id"), middleware.CurrentSupervisorID(c), dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rev)
}
