package handlers

import (
	"net/http"

	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/middleware"
	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/notify"
	"compliance-hub-backend/pkg/utils"
)

// StandardsHandler serves the standard-clause options for the record form.
type StandardsHandler struct {
	config *config.Config
	store  database.Store
}

// NewStandardsHandler creates a StandardsHandler.
func NewStandardsHandler(cfg *config.Config, store database.Store) *StandardsHandler {
	return &StandardsHandler{config: cfg, store: store}
}

// ListStandards handles GET /api/standards. Scoped to the caller's
// organisation, clause ascending. A fetch failure degrades to an empty
// list with a destructive notification rather than blocking the form.
func (h *StandardsHandler) ListStandards(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.RequireMember(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	if member.OrganisationID == "" {
		utils.WriteBadRequestResponse(w, "Organisation not found")
		return
	}

	standards, err := h.store.ListStandards(member.OrganisationID)
	if err != nil {
		utils.WriteSuccessResponse(w, map[string]interface{}{
			"standards":    []models.Standard{},
			"notification": notify.Error("Error", "Failed to load standards"),
		})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"standards": standards,
		"count":     len(standards),
	})
}
