package handlers

import (
	"errors"
	"io"
	"net/http"

	"compliance-hub-backend/pkg/compliance"
	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/middleware"
	"compliance-hub-backend/pkg/storage"
	"compliance-hub-backend/pkg/utils"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20 // 32 MB

// RecordsHandler serves the compliance-record endpoints.
type RecordsHandler struct {
	config  *config.Config
	store   database.Store
	service *compliance.Service
}

// NewRecordsHandler creates a RecordsHandler.
func NewRecordsHandler(cfg *config.Config, store database.Store, service *compliance.Service) *RecordsHandler {
	return &RecordsHandler{config: cfg, store: store, service: service}
}

// CreateRecord handles POST /api/records (multipart/form-data). Field
// names mirror the record form: compliance_item, standard_clause,
// compliance_status, responsible_person, next_review_date, notes, plus
// zero or more "files" parts in selection order.
func (h *RecordsHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.RequireMember(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid multipart form: "+err.Error())
		return
	}

	input := compliance.SubmitInput{
		ComplianceItem:    r.FormValue("compliance_item"),
		StandardClause:    r.FormValue("standard_clause"),
		ComplianceStatus:  r.FormValue("compliance_status"),
		ResponsiblePerson: r.FormValue("responsible_person"),
		NextReviewDate:    r.FormValue("next_review_date"),
		Notes:             r.FormValue("notes"),
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				utils.WriteBadRequestResponse(w, "Failed to read file "+fh.Filename+": "+err.Error())
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				utils.WriteBadRequestResponse(w, "Failed to read file "+fh.Filename+": "+err.Error())
				return
			}
			input.Files = append(input.Files, storage.File{Name: fh.Filename, Data: data})
		}
	}

	result, err := h.service.SubmitRecord(member, input)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	utils.WriteCreatedResponse(w, result)
}

// ListRecords handles GET /api/records, newest first, scoped to the
// caller's organisation.
func (h *RecordsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
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

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// writeSubmitError maps submission failures onto the response envelope:
// preconditions are 400s caught before any network call, upload failures
// and store failures surface the upstream cause.
func writeSubmitError(w http.ResponseWriter, err error) {
	if errors.Is(err, compliance.ErrOrganisationNotFound) || errors.Is(err, compliance.ErrResponsiblePersonRequired) {
		utils.WriteBadRequestResponse(w, err.Error())
		return
	}

	var ve *compliance.ValidationError
	if errors.As(err, &ve) {
		utils.WriteBadRequestResponse(w, ve.Error())
		return
	}

	var ue *storage.UploadError
	if errors.As(err, &ue) {
		utils.WriteBadGatewayResponse(w, "UPLOAD_FAILED", ue.Error())
		return
	}

	utils.WriteInternalServerErrorResponse(w, err.Error())
}
