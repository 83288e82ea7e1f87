package database

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"compliance-hub-backend/pkg/models"
)

// SupabaseStore talks to the managed store through the PostgREST API.
type SupabaseStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewSupabaseStore creates a Store backed by the Supabase REST API.
func NewSupabaseStore(url, key string) Store {
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	return &SupabaseStore{
		baseURL: url,
		apiKey:  key,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest sends one request to the PostgREST endpoint and returns the
// raw response body. Any status >= 400 is surfaced with the body included,
// since PostgREST puts its human-readable message there.
func (s *SupabaseStore) makeRequest(method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	url := s.baseURL + "/rest/v1" + endpoint
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// ================= Organisation members =================

func (s *SupabaseStore) GetMemberByUserID(userID string) (*models.OrganisationMember, error) {
	data, err := s.makeRequest("GET", "/organisation_members?user_id=eq."+userID+"&select=*", nil)
	if err != nil {
		return nil, err
	}
	var rows []models.OrganisationMember
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrMemberNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) ListTeamMembers(orgID string) ([]models.OrganisationMember, error) {
	data, err := s.makeRequest("GET", "/organisation_members?organisation_id=eq."+orgID+"&select=*&order=full_name.asc", nil)
	if err != nil {
		return nil, err
	}
	var rows []models.OrganisationMember
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SupabaseStore) UpdateMember(m *models.OrganisationMember) error {
	payload := map[string]interface{}{
		"full_name":  m.FullName,
		"avatar_url": m.AvatarURL,
		"updated_at": time.Now().Format(time.RFC3339),
	}
	data, err := s.makeRequest("PATCH", "/organisation_members?id=eq."+m.ID, payload)
	if err != nil {
		return err
	}
	// PostgREST reports a zero-row PATCH as success with an empty array.
	var rows []models.OrganisationMember
	if err := json.Unmarshal(data, &rows); err == nil && len(rows) == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// ================= Standards =================

func (s *SupabaseStore) ListStandards(orgID string) ([]models.Standard, error) {
	data, err := s.makeRequest("GET", "/standards?organisation_id=eq."+orgID+"&select=*&order=standard_clause.asc", nil)
	if err != nil {
		return nil, err
	}
	var rows []models.Standard
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ================= Compliance records =================

func (s *SupabaseStore) CreateComplianceRecord(rec *models.ComplianceRecord) error {
	payload := map[string]interface{}{
		"organisation_id":    rec.OrganisationID,
		"compliance_item":    rec.ComplianceItem,
		"standard_clause":    rec.StandardClause,
		"compliance_status":  string(rec.ComplianceStatus),
		"responsible_person": rec.ResponsiblePerson,
		"next_review_date":   rec.NextReviewDate,
		"notes":              rec.Notes,
		"file_name":          rec.FileName,
		"file_path":          rec.FilePath,
	}
	data, err := s.makeRequest("POST", "/compliance_records", payload)
	if err != nil {
		return err
	}
	// Pick up the generated id and timestamp from the returned row
	var rows []models.ComplianceRecord
	if err := json.Unmarshal(data, &rows); err == nil && len(rows) > 0 {
		rec.ID = rows[0].ID
		rec.CreatedAt = rows[0].CreatedAt
	}
	return nil
}

func (s *SupabaseStore) ListComplianceRecords(orgID string) ([]models.ComplianceRecord, error) {
	data, err := s.makeRequest("GET", "/compliance_records?organisation_id=eq."+orgID+"&select=*&order=created_at.desc", nil)
	if err != nil {
		return nil, err
	}
	var rows []models.ComplianceRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// HealthCheck probes the REST endpoint with a trivial request.
func (s *SupabaseStore) HealthCheck() error {
	_, err := s.makeRequest("GET", "/", nil)
	return err
}

// Close is a no-op; the HTTP client needs no explicit shutdown.
func (s *SupabaseStore) Close() error {
	return nil
}
