package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
)

// writeUserError writes msg as the JSON error body used across the server.
func writeUserError(w http.ResponseWriter, status int, msg core.UserMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   msg.Message,
		"message": msg.Message,
		"action":  msg.Action,
		"code":    msg.Code,
	})
}
