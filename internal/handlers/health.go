package handlers

import (
	"net/http"

	"github.com/invoza/webapp/internal/httpx"
)

// Healthz is the liveness probe.
func Healthz(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
