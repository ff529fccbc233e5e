// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError is the wire shape of an error returned by the chat API.
type HTTPError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// The chat UI only ever sees a successful resolution or this generic
// failure message for unrecovered server-side errors.
const genericFailureMessage = "AI failed, please try again"

// StatusFor maps an error to the HTTP status the chat API reports.
func StatusFor(err error) int {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		switch stdErr.Code {
		case ErrCodeEmptyMessage, ErrCodeInvalidChatRequest:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// WriteHTTP writes err to w as a JSON error response. Client errors keep
// their code and message; everything else collapses to the generic failure
// body so internal detail never leaks to the UI.
func WriteHTTP(w http.ResponseWriter, err error) {
	status := StatusFor(err)

	body := HTTPError{Error: genericFailureMessage}
	if status == http.StatusBadRequest {
		var stdErr *StandardError
		if errors.As(err, &stdErr) {
			body = HTTPError{Error: stdErr.Message, Code: string(stdErr.Code)}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}
