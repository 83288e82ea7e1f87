package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-hub-backend/pkg/compliance"
	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/models"
	"compliance-hub-backend/pkg/storage"
)

func newProfileHandlerUnderTest() (*ProfileHandler, *database.MemoryStore, *storage.MemoryObjectStore) {
	cfg := &config.Config{Environment: "test"}
	store := database.NewMemoryStore()
	objects := storage.NewMemoryObjectStore()
	service := compliance.NewService(store, objects, "compliance-files", "avatars", nil, nil)
	return NewProfileHandler(cfg, store, service), store, objects
}

// bareMember is an authenticated caller without a roster row.
func bareMember() *models.OrganisationMember {
	return &models.OrganisationMember{UserID: "u-new", Email: "new@example.com"}
}

func avatarBody(t *testing.T, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpdateProfile(t *testing.T) {
	h, store, _ := newProfileHandlerUnderTest()
	seeded := store.SeedMember(models.OrganisationMember{
		UserID:         "u1",
		OrganisationID: "org-a",
		FullName:       "Ann",
		Email:          "a@example.com",
	})

	body := strings.NewReader(`{"full_name":"Ann Renamed"}`)
	req := withMember(httptest.NewRequest(http.MethodPut, "/api/profile", body), &seeded)
	rec := httptest.NewRecorder()

	h.UpdateProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got, err := store.GetMemberByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann Renamed", got.FullName)
}

func TestUpdateProfileWithoutRosterRow(t *testing.T) {
	h, _, _ := newProfileHandlerUnderTest()

	body := strings.NewReader(`{"full_name":"Ghost"}`)
	req := withMember(httptest.NewRequest(http.MethodPut, "/api/profile", body), bareMember())
	rec := httptest.NewRecorder()

	h.UpdateProfile(rec, req)

	// Nothing to update; the store must not be asked to match a blank id.
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Profile not found", resp.Error.Message)
}

func TestUploadAvatarWithoutRosterRow(t *testing.T) {
	h, _, objects := newProfileHandlerUnderTest()

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	body, contentType := avatarBody(t, "me.png", pngHeader)
	req := withMember(httptest.NewRequest(http.MethodPost, "/api/profile/avatar", body), bareMember())
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.UploadAvatar(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Profile not found", resp.Error.Message)
	assert.Empty(t, objects.Objects(), "no object may be uploaded without a profile row")
}
