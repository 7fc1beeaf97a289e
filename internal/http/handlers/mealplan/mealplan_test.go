package mealplan_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/mealplan"
	"github.com/meera-iyer/campus-dining-api/internal/storage/memory"
)

func newRouter() *http.ServeMux {
	store := memory.New()
	router := http.NewServeMux()
	router.HandleFunc("POST /meal-plan", mealplan.New(store))
	router.HandleFunc("GET /meal-plan", mealplan.GetList(store))
	router.HandleFunc("GET /meal-plan/{id}", mealplan.GetByID(store))
	router.HandleFunc("PUT /meal-plan/{id}", mealplan.Update(store))
	router.HandleFunc("DELETE /meal-plan/{id}", mealplan.Delete(store))
	return router
}

func readJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON response: %v (body=%s)", err, rec.Body.String())
	}
	return m
}

func TestMealPlan_Lifecycle(t *testing.T) {
	router := newRouter()

	body := `{"name":"Unlimited 7 day","type":"swipes","cost":1000,
		"start_date":"2025-09-14T00:00:00Z","end_date":"2026-09-14T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/meal-plan", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rec.Code, rec.Body.String())
	}
	created := readJSON(t, rec)
	id, _ := created["meal_plan_id"].(string)
	if id == "" {
		t.Fatalf("expected meal_plan_id, got %v", created)
	}
	if created["cost"] != float64(1000) {
		t.Fatalf("cost mismatch: %v", created["cost"])
	}
	if created["start_date"] != "2025-09-14T00:00:00Z" {
		t.Fatalf("start_date mismatch: %v", created["start_date"])
	}

	// Partial update: only the cost. Dates and name must survive.
	req = httptest.NewRequest(http.MethodPut, "/meal-plan/"+id,
		bytes.NewBufferString(`{"cost":500}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rec.Code, rec.Body.String())
	}
	updated := readJSON(t, rec)
	if updated["cost"] != float64(500) {
		t.Fatalf("expected cost 500, got %v", updated["cost"])
	}
	if updated["name"] != "Unlimited 7 day" || updated["type"] != "swipes" {
		t.Fatalf("partial update clobbered fields: %v", updated)
	}
	if updated["end_date"] != "2026-09-14T00:00:00Z" {
		t.Fatalf("partial update clobbered end_date: %v", updated["end_date"])
	}

	// Delete, then verify the id is gone.
	req = httptest.NewRequest(http.MethodDelete, "/meal-plan/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status=%d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/meal-plan/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestMealPlan_Validation(t *testing.T) {
	router := newRouter()

	for name, body := range map[string]string{
		"missing name":  `{"type":"swipes","cost":1000}`,
		"missing type":  `{"name":"Unlimited","cost":1000}`,
		"missing cost":  `{"name":"Unlimited","type":"swipes"}`,
		"negative cost": `{"name":"Unlimited","type":"swipes","cost":-1}`,
		"bad date":      `{"name":"Unlimited","type":"swipes","cost":10,"start_date":"09/14/2025"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/meal-plan", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status=%d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMealPlan_ZeroCost(t *testing.T) {
	router := newRouter()

	// A cost of exactly 0 is legitimate (a free promo plan) and must be
	// told apart from a payload that omits cost entirely.
	req := httptest.NewRequest(http.MethodPost, "/meal-plan",
		bytes.NewBufferString(`{"name":"Free Plan","type":"promo","cost":0}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rec.Code, rec.Body.String())
	}
	created := readJSON(t, rec)
	if created["cost"] != float64(0) {
		t.Fatalf("expected cost 0, got %v", created["cost"])
	}

	// The zero survives a read and a zero-valued update.
	id := created["meal_plan_id"].(string)
	req = httptest.NewRequest(http.MethodGet, "/meal-plan/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("read status=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := readJSON(t, rec)["cost"]; got != float64(0) {
		t.Fatalf("expected cost 0 on read, got %v", got)
	}

	req = httptest.NewRequest(http.MethodPut, "/meal-plan/"+id,
		bytes.NewBufferString(`{"cost":0}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := readJSON(t, rec)["cost"]; got != float64(0) {
		t.Fatalf("expected cost 0 after update, got %v", got)
	}
}
