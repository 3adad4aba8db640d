// Package response implements the uniform JSON envelope every endpoint returns.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every response. Data is omitted only when nil:
// an empty list or map passed in is still serialized.
type Envelope struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorCode int    `json:"error_code,omitempty"`
	Data      any    `json:"data,omitempty"`
}

const defaultSuccessMessage = "operation succeeded"

// Success writes a 200 envelope. An empty message falls back to the default.
func Success(w http.ResponseWriter, data any, message string) {
	if message == "" {
		message = defaultSuccessMessage
	}
	writeJSON(w, http.StatusOK, Envelope{Status: "success", Message: message, Data: data})
}

// Fail writes an error envelope with the given HTTP status. errorCode 0 omits the field.
func Fail(w http.ResponseWriter, status int, message string, errorCode int) {
	writeJSON(w, status, Envelope{Status: "error", Message: message, ErrorCode: errorCode})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
