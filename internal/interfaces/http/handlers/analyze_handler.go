package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FireCircuit-Intelligence/internal/application/mapping"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

// AnalyzeHandler exposes the device mapping pipeline.
type AnalyzeHandler struct {
	engine      *mapping.Engine
	parallelism int
}

// NewAnalyzeHandler constructs the handler.  parallelism bounds batch
// concurrency; zero means GOMAXPROCS.
func NewAnalyzeHandler(engine *mapping.Engine, parallelism int) *AnalyzeHandler {
	return &AnalyzeHandler{engine: engine, parallelism: parallelism}
}

// Analyze maps one device snapshot.
// POST /api/v1/devices/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var snap device.Snapshot
	if !bindJSON(c, &snap) {
		return
	}
	if err := snap.Validate(); err != nil {
		respondError(c, err)
		return
	}
	result := h.engine.Analyze(c.Request.Context(), snap)
	respond(c, http.StatusOK, result)
}

// BatchRequest is the analyze-batch request body.
type BatchRequest struct {
	Devices []device.Snapshot `json:"devices"`

	// Parallelism overrides the server's configured bound when positive.
	Parallelism int `json:"parallelism,omitempty"`
}

// AnalyzeBatch maps a set of device snapshots.  Per-device failures are
// reported in the summary, never as a request failure.
// POST /api/v1/devices/analyze/batch
func (h *AnalyzeHandler) AnalyzeBatch(c *gin.Context) {
	var req BatchRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Devices) == 0 {
		respondError(c, apperrors.InvalidParam("devices must not be empty"))
		return
	}
	for _, snap := range req.Devices {
		if err := snap.Validate(); err != nil {
			respondError(c, err)
			return
		}
	}
	parallelism := h.parallelism
	if req.Parallelism > 0 {
		parallelism = req.Parallelism
	}
	result := h.engine.AnalyzeBatch(c.Request.Context(), req.Devices, parallelism)
	respond(c, http.StatusOK, result)
}
