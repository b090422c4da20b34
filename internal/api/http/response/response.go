package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the uniform JSON body every API endpoint returns, success or
// failure. Failure bodies carry no detail beyond the message, so a caller
// cannot distinguish a bad signature from an expired or rotated token.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OK writes a success envelope with the given payload.
func OK(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// Unauthorized writes the single uniform 401 body used for every
// authentication failure.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "authentication required")
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
