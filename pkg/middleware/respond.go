package middleware

import (
	"encoding/json"
	"net/http"
)

// writeErrorJSON emits the same error envelope the API handlers use, so a
// middleware rejection is indistinguishable on the wire from a handler error.
func writeErrorJSON(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
