package api

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/keyhole/api/handler"
	"github.com/use-agent/keyhole/api/middleware"
	"github.com/use-agent/keyhole/config"
	"github.com/use-agent/keyhole/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(sc *scraper.Scraper, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(sc, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(sc))

	// Landing page / demo form, when the static dir exists.
	if info, err := os.Stat(cfg.Server.StaticDir); err == nil && info.IsDir() {
		r.StaticFile("/", filepath.Join(cfg.Server.StaticDir, "index.html"))
		r.Static("/static", cfg.Server.StaticDir)
	}

	return r
}
