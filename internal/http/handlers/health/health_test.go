package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/health"
)

func TestHealth(t *testing.T) {
	h := health.New()

	// The endpoint is stateless, so repeated calls must behave identically.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected JSON Content-Type, got %q", ct)
		}

		var m map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
			t.Fatalf("invalid JSON: %v (body=%s)", err, rec.Body.String())
		}
		if m["status"] != "ok" {
			t.Fatalf("expected status ok, got %v", m)
		}
	}
}
