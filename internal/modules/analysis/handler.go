package analysis

import (
	"github.com/gin-gonic/gin"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/sessions", authMW)

	g.POST("/:id/analyze", h.analyze)
	g.GET("/:id/analysis", h.getAnalysis)
}

type analyzeDTO struct {
	Force bool `json:"force"`
}

// POST /sessions/:id/analyze
func (h *Handler) analyze(c *gin.Context) {
	sessionID := c.Param("id")

	var dto analyzeDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	if c.Query("force") == "true" {
		dto.Force = true
	}

	stored, err := h.svc.Run(c.Request.Context(), sessionID, dto.Force)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stored)
}

// GET /sessions/:id/analysis
func (h *Handler) getAnalysis(c *gin.Context) {
	stored, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if stored == nil {
		response.NotFoundMsg(c, "no analysis for this session yet")
		return
	}
	response.OK(c, stored)
}
