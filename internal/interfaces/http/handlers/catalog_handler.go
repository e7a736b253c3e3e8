package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/catalogstore"
)

// CatalogHandler exposes catalog status and reload.
type CatalogHandler struct {
	store *catalogstore.Store
}

func NewCatalogHandler(store *catalogstore.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// CatalogStatus describes the live catalog snapshot.
type CatalogStatus struct {
	Source              string    `json:"source"`
	NotificationVersion string    `json:"notification_version"`
	InitiatingVersion   string    `json:"initiating_version"`
	NotificationRecords int       `json:"notification_records"`
	InitiatingRecords   int       `json:"initiating_records"`
	LoadedAt            time.Time `json:"loaded_at"`
}

// Status reports the live catalog generation.
// GET /api/v1/catalog
func (h *CatalogHandler) Status(c *gin.Context) {
	snap := h.store.Current()
	respond(c, http.StatusOK, CatalogStatus{
		Source:              snap.Source,
		NotificationVersion: snap.Notification.Version(),
		InitiatingVersion:   snap.Initiating.Version(),
		NotificationRecords: snap.Notification.Len(),
		InitiatingRecords:   snap.Initiating.Len(),
		LoadedAt:            snap.LoadedAt,
	})
}

// Reload forces a synchronous catalog reload.  A failed reload keeps the
// previous snapshot serving and reports the failure.
// POST /api/v1/catalog/reload
func (h *CatalogHandler) Reload(c *gin.Context) {
	if err := h.store.Reload(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.Status(c)
}
