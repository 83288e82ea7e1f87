package handlers

import (
	"io"
	"net/http"
	"strings"

	"compliance-hub-backend/pkg/compliance"
	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/middleware"
	"compliance-hub-backend/pkg/notify"
	"compliance-hub-backend/pkg/utils"
)

// maxAvatarSize caps avatar uploads; anything larger is rejected upfront.
const maxAvatarSize = 5 << 20 // 5 MB

// ProfileHandler serves the profile-settings endpoints.
type ProfileHandler struct {
	config  *config.Config
	store   database.Store
	service *compliance.Service
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(cfg *config.Config, store database.Store, service *compliance.Service) *ProfileHandler {
	return &ProfileHandler{config: cfg, store: store, service: service}
}

// GetProfile handles GET /api/profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.RequireMember(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"profile": member})
}

// UpdateProfile handles PUT /api/profile. Only full_name is editable here.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.RequireMember(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	if member.ID == "" {
		// Authenticated but without a roster row; there is no profile to
		// update and the store would silently match nothing.
		utils.WriteBadRequestResponse(w, "Profile not found")
		return
	}

	var req struct {
		FullName string `json:"full_name"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		utils.WriteBadRequestResponse(w, "Full name is required")
		return
	}

	member.FullName = strings.TrimSpace(req.FullName)
	if err := h.store.UpdateMember(member); err != nil {
		utils.WriteBadGatewayResponse(w, "STORE_ERROR", err.Error())
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"profile":      member,
		"notification": notify.Success("Profile updated", "Your profile has been saved"),
	})
}

// UploadAvatar handles POST /api/profile/avatar (multipart, single "avatar"
// part, overwrite allowed).
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	member, err := middleware.RequireMember(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	if member.ID == "" {
		utils.WriteBadRequestResponse(w, "Profile not found")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid multipart form: "+err.Error())
		return
	}

	f, fh, err := r.FormFile("avatar")
	if err != nil {
		utils.WriteBadRequestResponse(w, "Avatar file is required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		utils.WriteBadRequestResponse(w, "Failed to read avatar: "+err.Error())
		return
	}

	result, err := h.service.UpdateAvatar(member, fh.Filename, data)
	if err != nil {
		utils.WriteBadGatewayResponse(w, "AVATAR_UPLOAD_FAILED", err.Error())
		return
	}

	utils.WriteSuccessResponse(w, result)
}
