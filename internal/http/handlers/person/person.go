// Package person contains all HTTP handlers related to the Person resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a storage backend.
// To inject dependencies we use a factory function that:
//  1. Accepts dependencies (store)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it can
// access `store` even after the factory call has returned. Example:
//
//	router.HandleFunc("POST /person", person.New(store))
//	//                                       ^^^^^^^^^^
//	//                    New(store) is called ONCE at startup.
//	//                    It returns a handler func which is called
//	//                    on EVERY incoming request.
//
// The sibling resource packages (address, mealplan, dininglocation)
// follow exactly this pattern; their files are commented more sparsely.
package person

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

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /person
// Creates a new person from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Alice", "email": "alice@columbia.edu", "phone": "+1 212 555 0100" }
//
// The client MAY supply "person_id" (a UUID4); otherwise one is generated.
//
// Success response (201 Created) — the full stored record:
//
//	{ "person_id": "…", "name": "Alice", …, "created_at": "…", "updated_at": "…" }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or failed validation
//	409 Conflict    — supplied person_id already exists
//	500 Internal    — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	// This is the factory function. It runs ONCE when the route is
	// registered and captures `store` in the closure below.

	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a person")

		// ── Step 1: Decode JSON body into a Person struct ─────────────
		var person types.Person
		err := json.NewDecoder(r.Body).Decode(&person)

		if errors.Is(err, io.EOF) {
			// io.EOF means the body was completely empty — nothing to decode.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			// Any other decode error: malformed JSON, wrong types, etc.
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// ── Step 2: Validate the decoded struct ───────────────────────
		// validator.New().Struct(v) checks all validate:"..." tags on v.
		if err := validator.New().Struct(person); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		// ── Step 3: Persist via the Storage interface ─────────────────
		// The store assigns the id and timestamps; a client-supplied id
		// that collides with an existing record comes back as
		// ErrDuplicateID, which maps to 409 Conflict.
		created, err := store.CreatePerson(person)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateID) {
				response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("person created", slog.String("id", created.ID))

		// ── Step 4: Return 201 Created with the stored record ─────────
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /person/{id}
// Fetches a single person by their UUID.
//
// Error responses:
//
//	400 Bad Request — id is not a valid UUID
//	404 Not Found   — no person with that id
//	500 Internal    — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.PathValue("id") extracts the {id} segment from the URL.
		// This works because Go 1.22+ supports named path parameters in
		// the ServeMux pattern: "GET /person/{id}"
		id := r.PathValue("id")
		slog.Info("getting a person", slog.String("id", id))

		// Reject garbage ids before touching storage. uuid.Parse accepts
		// exactly the canonical forms we ever generate.
		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		person, err := store.GetPersonByID(id)
		if err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error getting person",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, person)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /person
// Returns a JSON array of all persons.
//
// Returns an empty array [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all persons")

		persons, err := store.GetPersons()
		if err != nil {
			slog.Error("error getting persons", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, persons)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /person/{id}
// Merges the supplied fields into the existing record. Fields absent
// from the body are left untouched; the id always comes from the path.
//
// Request body (JSON) — every field optional:
//
//	{ "email": "new@columbia.edu" }
//
// Success response (200 OK) — the merged record.
//
// Error responses:
//
//	400 Bad Request — invalid id, empty body, or validation failure
//	404 Not Found   — no person with that id
//	500 Internal    — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a person", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		// Decode the partial-update payload. Pointer fields stay nil for
		// anything the client did not send.
		var upd types.PersonUpdate
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

		// Validate only the fields that were actually supplied
		// (omitempty skips nil pointers).
		if err := validator.New().Struct(upd); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		updated, err := store.UpdatePersonByID(id, upd)
		if err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error updating person",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("person updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /person/{id}
// Permanently removes a person record.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// Error responses:
//
//	400 Bad Request — invalid id
//	404 Not Found   — no person with that id
//	500 Internal    — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a person", slog.String("id", id))

		if _, err := uuid.Parse(id); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be a UUID")))
			return
		}

		if err := store.DeletePersonByID(id); err != nil {
			if errors.Is(err, storage.ErrResourceNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
				return
			}
			slog.Error("error deleting person",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("person deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
