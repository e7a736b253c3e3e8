// Package http is the HTTP interface of the engine: a gin route tree over
// the mapping, capacity, and catalog application services.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FireCircuit-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/FireCircuit-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree.  Nil handlers leave their routes unregistered, which keeps
// partial wiring possible in tests.
type RouterConfig struct {
	AnalyzeHandler *handlers.AnalyzeHandler
	CircuitHandler *handlers.CircuitHandler
	CatalogHandler *handlers.CatalogHandler
	HealthHandler  *handlers.HealthHandler

	Logger           logging.Logger
	Metrics          *prometheus.EngineMetrics
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter builds the complete route tree.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(log, cfg.Metrics))
	r.Use(middleware.Recovery(log))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	if cfg.AnalyzeHandler != nil {
		devices := api.Group("/devices")
		devices.POST("/analyze", cfg.AnalyzeHandler.Analyze)
		devices.POST("/analyze/batch", cfg.AnalyzeHandler.AnalyzeBatch)
	}
	if cfg.CircuitHandler != nil {
		circuits := api.Group("/circuits")
		circuits.POST("/validate", cfg.CircuitHandler.Validate)
		circuits.GET("/limits", cfg.CircuitHandler.Limits)
	}
	if cfg.CatalogHandler != nil {
		catalog := api.Group("/catalog")
		catalog.GET("", cfg.CatalogHandler.Status)
		catalog.POST("/reload", cfg.CatalogHandler.Reload)
	}

	return r
}
