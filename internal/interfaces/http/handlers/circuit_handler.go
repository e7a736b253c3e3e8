package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FireCircuit-Intelligence/internal/application/capacity"
)

// CircuitHandler exposes circuit capacity validation.
type CircuitHandler struct {
	svc *capacity.Service
}

func NewCircuitHandler(svc *capacity.Service) *CircuitHandler {
	return &CircuitHandler{svc: svc}
}

// Validate checks branches and power supplies against the configured
// limits.  Findings are part of a successful response; only a malformed
// request produces an error status.
// POST /api/v1/circuits/validate
func (h *CircuitHandler) Validate(c *gin.Context) {
	var req capacity.Request
	if !bindJSON(c, &req) {
		return
	}
	for _, b := range req.Branches {
		for _, d := range b.Devices {
			if err := d.Validate(); err != nil {
				respondError(c, err)
				return
			}
		}
	}
	for _, p := range req.Supplies {
		for _, b := range p.Branches {
			for _, d := range b.Devices {
				if err := d.Validate(); err != nil {
					respondError(c, err)
					return
				}
			}
		}
	}
	report, err := h.svc.Validate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, report)
}

// Limits returns the active validation limits.
// GET /api/v1/circuits/limits
func (h *CircuitHandler) Limits(c *gin.Context) {
	limits := h.svc.Limits()
	respond(c, http.StatusOK, gin.H{
		"spare_fraction":           limits.SpareFraction,
		"system_voltage":           limits.SystemVoltage,
		"max_drop_percent":         limits.MaxDropPercent,
		"effective_max_amps":       limits.EffectiveMaxAmps(),
		"effective_max_unit_loads": limits.EffectiveMaxUnitLoads(),
	})
}
