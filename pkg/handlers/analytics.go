package handlers

import (
	"net/http"
	"strings"

	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/middleware"
	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/utils"
)

// AnalyticsHandler serves the dashboard's summary numbers.
type AnalyticsHandler struct {
	config *config.Config
	store  database.Store
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(cfg *config.Config, store database.Store) *AnalyticsHandler {
	return &AnalyticsHandler{config: cfg, store: store}
}

// Summary handles GET /api/analytics/summary: record counts by compliance
// status plus the total evidence file count, scoped to the caller's
// organisation. Computed fresh per request; nothing is cached.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.RequireMember(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	if member.OrganisationID == "" {
		utils.WriteBadRequestResponse(w, "Organisation not found")
		return
	}

	records, err := h.store.ListComplianceRecords(member.OrganisationID)
	if err != nil {
		utils.WriteBadGatewayResponse(w, "STORE_ERROR", err.Error())
		return
	}

	byStatus := map[models.ComplianceStatus]int{
		models.StatusCompliant:    0,
		models.StatusAtRisk:       0,
		models.StatusNonCompliant: 0,
	}
	evidenceFiles := 0
	for _, rec := range records {
		byStatus[rec.ComplianceStatus]++
		if rec.FilePath != nil && *rec.FilePath != "" {
			evidenceFiles += len(strings.Split(*rec.FilePath, ","))
		}
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"total_records":  len(records),
		"compliant":      byStatus[models.StatusCompliant],
		"at_risk":        byStatus[models.StatusAtRisk],
		"non_compliant":  byStatus[models.StatusNonCompliant],
		"evidence_files": evidenceFiles,
	})
}
