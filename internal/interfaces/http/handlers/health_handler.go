package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/catalogstore"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store   *catalogstore.Store
	version string
}

func NewHealthHandler(store *catalogstore.Store, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

// Liveness reports process health.
// GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Readiness reports whether the engine can serve analysis requests: a
// catalog snapshot must be loaded and indexed.
// GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.store == nil || h.store.Current() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "catalog not loaded"})
		return
	}
	snap := h.store.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ready",
		"catalog_source": snap.Source,
	})
}
