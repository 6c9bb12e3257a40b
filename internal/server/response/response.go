// Package response provides standardized HTTP response structures and helpers
// for the fioriscope API server. Every JSON response carries a data field on
// success and an error field on failure.
package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

// Response represents the standardized API response structure.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
// AlertTTLMs is set on user-facing alerts and tells the client how long to
// keep the message on screen.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	AlertTTLMs int64  `json:"alertTtlMs,omitempty"`
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

// Alert creates an error response that the client shows as a transient alert.
func Alert(code, message string) Response {
	resp := Fail(code, message, "")
	resp.Error.AlertTTLMs = constants.AlertTTL.Milliseconds()
	return resp
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are already sent, nothing useful to do on failure
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 alert.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Alert("BAD_REQUEST", message))
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

// Conflict writes a 409 alert.
func Conflict(w http.ResponseWriter, message string) {
	JSON(w, http.StatusConflict, Alert("CONFLICT", message))
}

// Unprocessable writes a 422 alert.
func Unprocessable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnprocessableEntity, Alert("UNPROCESSABLE", message))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail("RATE_LIMITED", "Rate limit exceeded", message))
}

// BadGateway writes a 502 error response for catalog failures.
func BadGateway(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadGateway, Fail("UPSTREAM_ERROR", "Catalog service error", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ErrorFromType maps typed errors to appropriate HTTP responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var apiErr *errors.APIError
	switch {
	case errors.IsValidationError(err):
		BadRequest(w, validationMessage(err))
	case errors.IsBusy(err):
		Conflict(w, err.Error())
	case errors.IsNoValidResults(err):
		Unprocessable(w, err.Error())
	case stderrors.Is(err, errors.ErrNoPreviousRun):
		NotFound(w, err.Error(), "")
	case stderrors.As(err, &apiErr):
		BadGateway(w, apiErr.Error())
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	default:
		InternalError(w, err)
	}
}

// validationMessage prefers the bare message so alerts read like the prompt.
func validationMessage(err error) string {
	var v *errors.ValidationError
	if stderrors.As(err, &v) && v.Message != "" {
		return v.Message
	}
	return err.Error()
}
