package handlers

import (
	"net/http"
)

// Health answers liveness probes for the card service. It checks no
// upstream image or prompt provider.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
