// Package mealplan contains the HTTP handlers for the MealPlan resource.
// It follows the closure/factory pattern documented in the person package.
package mealplan

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/meera-iyer/campus-dining-api/internal/storage"
	"github.com/meera-iyer/campus-dining-api/internal/types"
	"github.com/meera-iyer/campus-dining-api/internal/utils/response"
)

// New handles POST /meal-plan.
//
// Request body (JSON):
//
//	{ "name": "Unlimited 7 day", "type": "swipes", "cost": 1000,
//	  "start_date": "2025-09-14T00:00:00Z", "end_date": "2026-09-14T00:00:00Z" }
//
// start_date and end_date are optional RFC3339 timestamps.
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a meal plan")

		var plan types.MealPlan
		err := json.NewDecoder(r.Body).Decode(&plan)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(plan); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		created, err := store.CreateMealPlan(plan)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateID) {
				response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("meal plan created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /meal-plan/{id}.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a meal plan", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		plan, err := store.GetMealPlanByID(id)
		if err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error getting meal plan",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, plan)
	}
}

// GetList handles GET /meal-plan. Empty store yields [], not null.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all meal plans")

		plans, err := store.GetMealPlans()
		if err != nil {
			slog.Error("error getting meal plans", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, plans)
	}
}

// Update handles PUT /meal-plan/{id} — a partial update; fields absent
// from the body are left untouched. Example: {"cost": 500} changes only
// the cost.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a meal plan", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		var upd types.MealPlanUpdate
		err := json.NewDecoder(r.Body).Decode(&upd)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(upd); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		updated, err := store.UpdateMealPlanByID(id, upd)
		if err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error updating meal plan",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("meal plan updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /meal-plan/{id}.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a meal plan", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		if err := store.DeleteMealPlanByID(id); err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error deleting meal plan",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("meal plan deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
