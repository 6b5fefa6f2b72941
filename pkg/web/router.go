package web

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/scienceol/equivalents/internal/config"
	"github.com/scienceol/equivalents/pkg/core/equivalent"
	"github.com/scienceol/equivalents/pkg/core/reagent"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/middleware/metrics"
	equivalentView "github.com/scienceol/equivalents/pkg/web/views/equivalent"
	"github.com/scienceol/equivalents/pkg/web/views/health"
	reagentView "github.com/scienceol/equivalents/pkg/web/views/reagent"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Services are the business services the routes are served by.
type Services struct {
	Reagent    reagent.Service
	Equivalent equivalent.Service
}

func NewRouter(g *gin.Engine, s *Services) {
	installMiddleware(g)
	installURL(g, s)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

func installURL(g *gin.Engine, s *Services) {
	g.GET("/metrics", metrics.Handler())

	api := g.Group("/api")
	{
		h := health.NewHealthHandle(s.Reagent)
		api.GET("/health", h.Health)
		api.GET("/health/live", h.Live)
		api.GET("/health/ready", h.Ready)
	}

	v1 := api.Group("/v1")
	{
		rHandle := reagentView.NewReagentHandle(s.Reagent)
		reagentRouter := v1.Group("/reagent")
		reagentRouter.GET("", rHandle.Get)
		reagentRouter.GET("/list", rHandle.List)
		reagentRouter.POST("/create", rHandle.Create)
		reagentRouter.GET("/compound", rHandle.Compound)
	}
	{
		eHandle := equivalentView.NewEquivalentHandle(s.Equivalent)
		equivalentRouter := v1.Group("/equivalent")
		equivalentRouter.POST("/calculate", eHandle.Calculate)
	}
}
