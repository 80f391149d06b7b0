package common

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/brokertools/marketplace/api/internal/platform/logger"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(log *logger.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && log != nil {
		log.Error("json encode failed", "status", status, "error", err)
	}
}

// WriteError writes the standard {"error": message} body.
func WriteError(log *logger.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(log, w, status, map[string]string{"error": message})
}

// DecodeJSON reads a size-limited JSON body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody)).Decode(dst)
}
