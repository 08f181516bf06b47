package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shamiri-institute/supervisor-core/internal/middleware"
	"github.com/shamiri-institute/supervisor-core/internal/modules/analysis"
	"github.com/shamiri-institute/supervisor-core/internal/modules/auth"
	"github.com/shamiri-institute/supervisor-core/internal/modules/evaluation"
	"github.com/shamiri-institute/supervisor-core/internal/modules/review"
	"github.com/shamiri-institute/supervisor-core/internal/modules/sessions"
	pkgredis "github.com/shamiri-institute/supervisor-core/internal/pkg/redis"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) error {
	judge, err := evaluation.NewProviderJudge(a.cfg.AI)
	if err != nil {
		return fmt.Errorf("evaluation provider: %w", err)
	}
	evaluator := evaluation.New(judge)

	authSvc := auth.NewService(a.db)
	sessionSvc := sessions.NewService(a.db)
	analysisSvc := analysis.NewService(a.db, evaluator)
	reviewSvc := review.NewService(a.db)

	authMW := middleware.Auth(a.db)

	api := a.router.Group("/api/v1")
	if rc != nil {
		api.Use(middleware.RateLimit(rc.Raw()))
		api.Use(middleware.Idempotence(rc.Raw()))
	}

	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)
	sessions.NewHandler(sessionSvc).RegisterRoutes(api, authMW)
	analysis.NewHandler(analysisSvc).RegisterRoutes(api, authMW)
	review.NewHandler(reviewSvc).RegisterRoutes(api, authMW)

	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a.router.NoRoute(func(c *gin.Context) {
		response.NotFoundMsg(c, "route not found")
	})
	a.router.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	return nil
}
