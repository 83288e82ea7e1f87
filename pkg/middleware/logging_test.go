package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/models"
)

func captureRequestLog(t *testing.T, cfg *config.Config) *bytes.Buffer {
	t.Helper()
	log := RequestLogger(cfg)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLoggerRecordsCallerEmail(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret, Environment: "test"}
	buf := captureRequestLog(t, cfg)

	store := database.NewMemoryStore()
	store.SeedMember(models.OrganisationMember{
		UserID:         "u1",
		OrganisationID: "org-a",
		FullName:       "Ada Admin",
		Email:          "ada@example.com",
		Role:           models.RoleAdmin,
	})

	handler := Logger(cfg)(AuthMiddleware(cfg, store, RequestLogger(cfg))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, "u1", "ada@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"caller":"ada@example.com"`)
}

func TestLoggerAnonymousWithoutAuth(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret, Environment: "test"}
	buf := captureRequestLog(t, cfg)

	handler := Logger(cfg)(AuthMiddleware(cfg, database.NewMemoryStore(), RequestLogger(cfg))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, buf.String(), `"caller":"anonymous"`)
}
