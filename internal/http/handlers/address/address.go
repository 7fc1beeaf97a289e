// Package address contains the HTTP handlers for the Address resource.
// It follows the closure/factory pattern documented in the person package.
package address

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

// New handles POST /address.
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an address")

		var address types.Address
		err := json.NewDecoder(r.Body).Decode(&address)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(address); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		created, err := store.CreateAddress(address)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateID) {
				response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("address created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /address/{id}.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an address", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		address, err := store.GetAddressByID(id)
		if err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error getting address",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, address)
	}
}

// GetList handles GET /address. Empty store yields [], not null.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all addresses")

		addresses, err := store.GetAddresses()
		if err != nil {
			slog.Error("error getting addresses", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, addresses)
	}
}

// Update handles PUT /address/{id} — a partial update; fields absent
// from the body are left untouched.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating an address", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		var upd types.AddressUpdate
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

		updated, err := store.UpdateAddressByID(id, upd)
		if err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error updating address",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("address updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /address/{id}.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting an address", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		if err := store.DeleteAddressByID(id); err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error deleting address",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("address deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
