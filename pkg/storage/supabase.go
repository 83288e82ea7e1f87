package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SupabaseObjectStore talks to the Supabase Storage REST API.
type SupabaseObjectStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewSupabaseObjectStore creates an ObjectStore backed by Supabase Storage.
func NewSupabaseObjectStore(url, key string) *SupabaseObjectStore {
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	return &SupabaseObjectStore{
		baseURL: url,
		apiKey:  key,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *SupabaseObjectStore) newRequest(method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, s.baseURL+"/storage/v1"+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	return req, nil
}

// BucketExists checks the bucket via GET /bucket/{id}; a 404 means absent,
// anything else >= 400 is an error.
func (s *SupabaseObjectStore) BucketExists(bucket string) (bool, error) {
	req, err := s.newRequest("GET", "/bucket/"+bucket, nil)
	if err != nil {
		return false, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("bucket check failed with status %d: %s", resp.StatusCode, string(body))
	}
}

// CreateBucket creates the bucket with the given visibility and MIME
// allow-list. Pre-existence surfaces as an API error the caller may ignore.
func (s *SupabaseObjectStore) CreateBucket(bucket string, opts BucketOptions) error {
	payload := map[string]interface{}{
		"id":     bucket,
		"name":   bucket,
		"public": opts.Public,
	}
	if len(opts.AllowedMIMETypes) > 0 {
		payload["allowed_mime_types"] = opts.AllowedMIMETypes
	}
	if opts.FileSizeLimit > 0 {
		payload["file_size_limit"] = opts.FileSizeLimit
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal bucket payload: %w", err)
	}

	req, err := s.newRequest("POST", "/bucket", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bucket creation failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Upload writes raw bytes to /object/{bucket}/{key}.
func (s *SupabaseObjectStore) Upload(bucket, key string, data []byte, opts UploadOptions) error {
	req, err := s.newRequest("POST", "/object/"+bucket+"/"+key, bytes.NewReader(data))
	if err != nil {
		return err
	}

	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	}
	if opts.CacheControl != "" {
		req.Header.Set("Cache-Control", "max-age="+opts.CacheControl)
	}
	req.Header.Set("x-upsert", strconv.FormatBool(opts.Upsert))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// PublicURL derives the public URL of an object in a public bucket.
func (s *SupabaseObjectStore) PublicURL(bucket, key string) string {
	return s.baseURL + "/storage/v1/object/public/" + bucket + "/" + key
}
