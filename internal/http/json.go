// Package httpx provides HTTP handlers and utilities for the menuboard API.
package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/forkful/menuboard/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams carries the status code, machine-readable code, and cause for
// an error response.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteAppError maps a typed application error to an HTTP response. The
// informational codes (already_connected, not_connected) render as 200 since
// they report an outcome rather than a fault.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
		code = apperrors.ErrCodeInternal
	}

	body := map[string]string{"error": string(code), "message": err.Error()}
	if field := apperrors.GetField(err); field != "" {
		body["field"] = field
	}
	if status == http.StatusOK {
		body["status"] = string(code)
		delete(body, "error")
	}
	WriteJSON(w, status, body)
}

var statusByCode = map[apperrors.ErrorCode]int{ //nolint:gochecknoglobals // read-only mapping table
	apperrors.ErrCodeValidation:       http.StatusBadRequest,
	apperrors.ErrCodeNotFound:         http.StatusNotFound,
	apperrors.ErrCodeConflict:         http.StatusConflict,
	apperrors.ErrCodeForbidden:        http.StatusForbidden,
	apperrors.ErrCodeInvalidState:     http.StatusUnauthorized,
	apperrors.ErrCodeExchange:         http.StatusUnauthorized,
	apperrors.ErrCodeProfile:          http.StatusUnauthorized,
	apperrors.ErrCodeAlreadyConnected: http.StatusOK,
	apperrors.ErrCodeNotConnected:     http.StatusOK,
	apperrors.ErrCodeTimeout:          http.StatusGatewayTimeout,
	apperrors.ErrCodeCanceled:         http.StatusServiceUnavailable,
	apperrors.ErrCodeInternal:         http.StatusInternalServerError,
}
