// Package health provides the liveness endpoint used by load balancers
// and monitoring systems to verify that the service is running.
package health

import (
	"net/http"

	"github.com/meera-iyer/campus-dining-api/internal/utils/response"
)

// New handles GET /health.
//
// It has no dependencies and no side effects: it touches neither the
// storage layer nor any external system, so a 200 here means only
// "the process is up and serving HTTP".
//
// Success response (200 OK):
//
//	{ "status": "ok" }
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
