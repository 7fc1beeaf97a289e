package dininglocation_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/dininglocation"
	"github.com/meera-iyer/campus-dining-api/internal/storage/memory"
)

func newRouter() *http.ServeMux {
	store := memory.New()
	router := http.NewServeMux()
	router.HandleFunc("POST /dining-location", dininglocation.New(store))
	router.HandleFunc("GET /dining-location", dininglocation.GetList(store))
	router.HandleFunc("GET /dining-location/{id}", dininglocation.GetByID(store))
	router.HandleFunc("PUT /dining-location/{id}", dininglocation.Update(store))
	router.HandleFunc("DELETE /dining-location/{id}", dininglocation.Delete(store))
	return router
}

func TestDiningLocation_Lifecycle(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/dining-location",
		bytes.NewBufferString(`{"name":"Grace Dodge","capacity":200}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	id, _ := created["dining_location_id"].(string)
	if id == "" {
		t.Fatalf("expected dining_location_id, got %v", created)
	}
	if created["capacity"] != float64(200) {
		t.Fatalf("capacity mismatch: %v", created["capacity"])
	}

	// Bump the capacity; name must survive.
	req = httptest.NewRequest(http.MethodPut, "/dining-location/"+id,
		bytes.NewBufferString(`{"capacity":500}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rec.Code, rec.Body.String())
	}
	var updated map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if updated["capacity"] != float64(500) || updated["name"] != "Grace Dodge" {
		t.Fatalf("partial update wrong: %v", updated)
	}

	req = httptest.NewRequest(http.MethodDelete, "/dining-location/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status=%d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/dining-location/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestDiningLocation_Validation(t *testing.T) {
	router := newRouter()

	for name, body := range map[string]string{
		"missing name":      `{"capacity":200}`,
		"missing capacity":  `{"name":"Grace Dodge"}`,
		"zero capacity":     `{"name":"Grace Dodge","capacity":0}`,
		"negative capacity": `{"name":"Grace Dodge","capacity":-5}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/dining-location", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status=%d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}
