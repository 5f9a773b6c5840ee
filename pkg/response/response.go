// Package response writes the JSON bodies the API client expects: resources
// are returned as-is, failures always carry a {"message": ...} object.
// Internal diagnostics (wrapped errors, stack traces) never reach the wire;
// they belong in the logs.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Message string `json:"message"`
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends a response with the given status and payload.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, data)
}

// Success sends a 200 response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, data)
}

// Message sends a 200 response carrying only a message.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, errorBody{Message: message})
}

// Error sends an error response with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errorBody{Message: message})
}

// ValidationError sends a 400 with the first field-level failure.
// The client surfaces the message verbatim, so one clear sentence beats a map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	for _, msg := range errs {
		Error(w, http.StatusBadRequest, msg)
		return
	}
	Error(w, http.StatusBadRequest, "Validation failed")
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Internal sends a 500 with a generic message.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}
