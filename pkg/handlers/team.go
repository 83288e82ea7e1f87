package handlers

import (
	"net/http"

	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/middleware"
	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/utils"
)

// TeamHandler serves the organisation roster used by the responsible-person
// selector.
type TeamHandler struct {
	config *config.Config
	store  database.Store
}

// NewTeamHandler creates a TeamHandler.
func NewTeamHandler(cfg *config.Config, store database.Store) *TeamHandler {
	return &TeamHandler{config: cfg, store: store}
}

// ListMembers handles GET /api/team. Only admins get the roster; everyone
// else is pinned to themselves in the record form and has no use for it.
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.RequireMember(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	if member.OrganisationID == "" {
		utils.WriteBadRequestResponse(w, "Organisation not found")
		return
	}
	if member.Role != models.RoleAdmin {
		utils.WriteForbiddenResponse(w, "Admin privileges required")
		return
	}

	members, err := h.store.ListTeamMembers(member.OrganisationID)
	if err != nil {
		utils.WriteBadGatewayResponse(w, "STORE_ERROR", err.Error())
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"members": members,
		"count":   len(members),
	})
}
