package httpapi

import (
	"encoding/json"
	"net/http"

	"priced/internal/predictor"
	"priced/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeValidationError writes a 400 payload that names the offending field.
func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{
		Error: err.Error(),
		Code:  http.StatusBadRequest,
		Field: predictor.ValidationField(err),
	})
}
