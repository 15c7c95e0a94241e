package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"thoughts-api/internal/domain"
	"thoughts-api/internal/observability"
)

// Error names carried in the response payload of failed requests
const (
	ValidationError       = "ValidationError"
	NotFoundError         = "NotFoundError"
	InvalidInputError     = "InvalidInputError"
	StoreUnavailableError = "StoreUnavailableError"
)

// Envelope wraps every /thoughts response body
type Envelope struct {
	Success  bool `json:"success"`
	Response any  `json:"response"`
}

// ErrorResponse is the response payload of a failed request
type ErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.Error("failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, response any) {
	writeJSON(w, status, Envelope{Success: true, Response: response})
}

// writeError logs err and answers with the failure envelope
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := errorResponse(err)

	log := observability.FromContext(r.Context())
	if resp.Name == StoreUnavailableError {
		log.Error("store operation failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, Envelope{Success: false, Response: resp})
}

// errorResponse maps domain errors to their public name and message.
// Store failures never expose driver details.
func errorResponse(err error) ErrorResponse {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return ErrorResponse{Name: ValidationError, Message: detail(err, domain.ErrValidation)}
	case errors.Is(err, domain.ErrThoughtNotFound):
		return ErrorResponse{Name: NotFoundError, Message: domain.ErrThoughtNotFound.Error()}
	case errors.Is(err, domain.ErrInvalidID):
		return ErrorResponse{Name: InvalidInputError, Message: detail(err, domain.ErrInvalidID)}
	default:
		return ErrorResponse{Name: StoreUnavailableError, Message: domain.ErrStoreUnavailable.Error()}
	}
}

// detail strips the sentinel prefix from "sentinel: detail" messages.
// Any other shape falls back to the sentinel text so wrapped causes stay in the logs.
func detail(err, sentinel error) string {
	if rest, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok {
		return rest
	}
	return sentinel.Error()
}
