// Package response provides the HTTP response helpers of the storefront dev
// backend. Informational endpoints answer with a JSON envelope holding a data
// field or an error field. Submission endpoints answer in plain text because
// clients show the body to users verbatim.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/storefront/pkg/errors"
)

// Response represents the standardized API response structure.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(resp)
}

// Raw writes an already encoded JSON body.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Text writes a plain-text response.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail("UNAUTHORIZED", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(
		"METHOD_NOT_ALLOWED",
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail("RATE_LIMITED", "Rate limit exceeded", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// TextError writes err as a plain-text response: 400 for validation and
// parse failures, 413 for oversized bodies, 500 otherwise.
func TextError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	var parseErr *errors.ParseError
	switch {
	case errors.As(err, &tooLarge):
		Text(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.IsValidationError(err):
		Text(w, http.StatusBadRequest, validationMessage(err))
	case errors.As(err, &parseErr):
		Text(w, http.StatusBadRequest, parseErr.Message)
	default:
		Text(w, http.StatusInternalServerError, "internal server error")
	}
}

func validationMessage(err error) string {
	var ve *errors.ValidationError
	if errors.As(err, &ve) {
		if ve.Field != "" {
			return ve.Field + ": " + ve.Message
		}
		return ve.Message
	}
	return err.Error()
}
