package handlers

import (
	"net/http"
	"time"

	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/utils"
)

// HealthHandler serves the root health probe.
type HealthHandler struct {
	config *config.Config
	store  database.Store
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, store database.Store) *HealthHandler {
	return &HealthHandler{config: cfg, store: store}
}

// HealthCheck handles GET /.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	storeStatus := "healthy"
	if err := h.store.HealthCheck(); err != nil {
		storeStatus = "unhealthy: " + err.Error()
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"service":      "compliance-hub-backend",
		"version":      "1.0.0",
		"environment":  h.config.Environment,
		"store":        h.storeType(),
		"store_status": storeStatus,
		"timestamp":    time.Now().Unix(),
		"status":       "healthy",
	})
}

// storeType names the configured store backend.
func (h *HealthHandler) storeType() string {
	if h.config.PostgresDSN != "" {
		return "postgresql"
	}
	if h.config.SupabaseURL != "" && h.config.SupabaseKey != "" {
		return "supabase"
	}
	return "memory"
}
