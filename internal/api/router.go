// Package api exposes the schedule analysis over a small JSON REST API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huangsam/shiftgrid/internal/contract"
)

// NewRouter builds the gin engine serving the health check and the v1 routes.
func NewRouter(cfg *contract.Config, mgr contract.CacheManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handler{baseCfg: cfg, mgr: mgr}
	v1 := r.Group("/api/v1")
	if cfg.APISecret != "" {
		v1.Use(RequireAuth(cfg.APISecret))
	}
	{
		v1.GET("/ranges", h.getRanges)
		v1.GET("/days", h.getDays)
		v1.GET("/streaks", h.getStreaks)
		v1.GET("/windows", h.getWindows)
		v1.GET("/grid", h.getGrid)
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "route not found")
	})
	return r
}
