package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every endpoint writes.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a machine code plus a human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WriteJSONResponse writes a JSON envelope with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteSuccessResponse writes a 200 envelope.
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteJSONResponse(w, http.StatusOK, data)
}

// WriteCreatedResponse writes a 201 envelope.
func WriteCreatedResponse(w http.ResponseWriter, data interface{}) {
	WriteJSONResponse(w, http.StatusCreated, data)
}

// WriteErrorResponse writes an error envelope with a generic code.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	WriteErrorResponseWithCode(w, statusCode, "ERROR", message, "")
}

// WriteErrorResponseWithCode writes an error envelope with an explicit code.
func WriteErrorResponseWithCode(w http.ResponseWriter, statusCode int, code, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteBadRequestResponse writes a 400 error envelope.
func WriteBadRequestResponse(w http.ResponseWriter, message string) {
	WriteErrorResponseWithCode(w, http.StatusBadRequest, "BAD_REQUEST", message, "")
}

// WriteUnauthorizedResponse writes a 401 error envelope.
func WriteUnauthorizedResponse(w http.ResponseWriter, message string) {
	WriteErrorResponseWithCode(w, http.StatusUnauthorized, "UNAUTHORIZED", message, "")
}

// WriteForbiddenResponse writes a 403 error envelope.
func WriteForbiddenResponse(w http.ResponseWriter, message string) {
	WriteErrorResponseWithCode(w, http.StatusForbidden, "FORBIDDEN", message, "")
}

// WriteNotFoundResponse writes a 404 error envelope.
func WriteNotFoundResponse(w http.ResponseWriter, message string) {
	WriteErrorResponseWithCode(w, http.StatusNotFound, "NOT_FOUND", message, "")
}

// WriteBadGatewayResponse writes a 502 error envelope, used when an
// upstream managed service (store, object storage) fails.
func WriteBadGatewayResponse(w http.ResponseWriter, code, message string) {
	WriteErrorResponseWithCode(w, http.StatusBadGateway, code, message, "")
}

// WriteInternalServerErrorResponse writes a 500 error envelope.
func WriteInternalServerErrorResponse(w http.ResponseWriter, message string) {
	WriteErrorResponseWithCode(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, "")
}

// ParseJSONBody decodes a JSON request body into v.
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// GetQueryParam reads a query parameter, falling back to a default.
func GetQueryParam(r *http.Request, key, defaultValue string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return defaultValue
}
