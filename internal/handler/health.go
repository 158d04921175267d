package handler

import "net/http"

// HandleHealth handles GET /health requests. It is the only route that does
// not require authentication.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
