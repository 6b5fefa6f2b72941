package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/equivalents/pkg/middleware/db"
	"github.com/scienceol/equivalents/pkg/middleware/redis"
)

// Pinger is the catalog store check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handle struct {
	catalog Pinger
}

func NewHealthHandle(catalog Pinger) *Handle {
	return &Handle{catalog: catalog}
}

func (h *Handle) Health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Live reports the process is alive.
func (h *Handle) Live(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the catalog store, plus postgres and redis when they were
// initialised.
func (h *Handle) Ready(g *gin.Context) {
	ctx := g.Request.Context()
	checks := gin.H{}
	healthy := true

	if err := h.catalog.Ping(ctx); err != nil {
		checks["catalog"] = "unhealthy"
		healthy = false
	} else {
		checks["catalog"] = "ok"
	}

	if ds := db.DB(); ds != nil {
		sqlDB, err := ds.DBIns().DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			checks["postgres"] = "unhealthy"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	if rc := redis.GetClient(); rc != nil {
		if err := rc.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unhealthy"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	msg := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		msg = "not_ready"
	}

	g.JSON(status, gin.H{
		"status": msg,
		"checks": checks,
	})
}
