package utils

import (
	"encoding/json"
	"net/http"
)

type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorPayload is the body of every failed resume request.
type ErrorPayload struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// JSONResponse sends a JSON response with given status, success flag, and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	WriteJSON(w, status, payload)
}

// WriteJSON encodes any value as the response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse writes {"error": message}. Detail is only set for unexpected failures.
func ErrorResponse(w http.ResponseWriter, status int, message string, detail ...string) {
	payload := ErrorPayload{Error: message}
	if len(detail) > 0 {
		payload.Detail = detail[0]
	}
	WriteJSON(w, status, payload)
}
