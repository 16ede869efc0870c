package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON success body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondError writes the uniform {"error": "..."} failure body. Internal
// details are never included here; they go to the server log only.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}
