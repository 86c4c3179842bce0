// Common helper functions for HTTP handlers.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/SmilesKit/pkg/errors"
	chemtypes "github.com/turtacn/SmilesKit/pkg/types/chem"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.  Code carries the typed
// pkg/errors code; Diagnostics carries any parser or enrichment messages that
// accompanied the failure.
type ErrorResponse struct {
	Code        int                    `json:"code"`
	Message     string                 `json:"message"`
	Diagnostics []chemtypes.Diagnostic `json:"diagnostics,omitempty"`
}

// writeError writes a structured error response with an explicit status.
func writeError(w http.ResponseWriter, statusCode int, code errors.ErrorCode, message string) {
	writeJSON(w, statusCode, ErrorResponse{Code: int(code), Message: message})
}

// writeAppError maps an AppError chain onto the HTTP response.
func writeAppError(w http.ResponseWriter, err error, diags []chemtypes.Diagnostic) {
	code := errors.GetCode(err)
	writeJSON(w, code.HTTPStatus(), ErrorResponse{
		Code:        int(code),
		Message:     err.Error(),
		Diagnostics: diags,
	})
}
