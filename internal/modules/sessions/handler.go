package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/pagination"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/sessions", authMW)

	g.GET("", h.list)
	g.GET("/stats", h.stats)
	g.GET("/:id", h.get)
}

// GET /sessions?page=N&size=N&fellow=ID&group=ID
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	filter := ListFilter{
		FellowID: c.Query("fellow"),
		GroupID:  c.Query("group"),
	}

	items, pag, err := h.svc.List(q, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]sessionResponse, len(items))
	for i := range items {
		out[i] = toResponse(&items[i])
	}
	response.Paged(c, out, pag)
}

// GET /sessions/stats
func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// GET /sessions/:id
func (h *Handler) get(c *gin.Context) {
	session, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toDetailResponse(session))
}
