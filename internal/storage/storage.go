// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care which backend they are
// talking to. By depending only on this interface:
//
//   - Switching backends = implement the interface for the new store,
//     change one line in main.go. Zero handler changes. This application
//     ships two: sqlite (the default) and memory.
//
//   - Writing tests = pass the memory store. No database file needed.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"errors"

	"github.com/meera-iyer/campus-dining-api/internal/types"
)

// Sentinel errors shared by every backend. Handlers match on these with
// errors.Is to pick the right HTTP status code (404 / 409) instead of
// string-sniffing backend-specific messages.
var (
	// ErrResourceNotFound means no record exists for the given id.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDuplicateID means a client-supplied id on create collides with
	// an existing record.
	ErrDuplicateID = errors.New("id already exists")
)

// Storage is the backend contract: the same five operations for each of
// the four resource types.
//
// Conventions shared by all backends:
//
//   - Create*: if the record's ID is empty a fresh UUID4 is generated;
//     CreatedAt/UpdatedAt are set to the current UTC time. The stored
//     record is returned. A colliding id yields ErrDuplicateID.
//
//   - Get*/Update*/Delete* on an unknown id yield ErrResourceNotFound.
//
//   - Update*: only non-nil fields of the update payload are applied;
//     UpdatedAt is bumped; the merged record is returned.
//
//   - List methods return an empty slice (not nil) when the store is
//     empty, so the JSON response is [] rather than null.
type Storage interface {
	// Person
	CreatePerson(p types.Person) (types.Person, error)
	GetPersonByID(id string) (types.Person, error)
	GetPersons() ([]types.Person, error)
	UpdatePersonByID(id string, upd types.PersonUpdate) (types.Person, error)
	DeletePersonByID(id string) error

	// Address
	CreateAddress(a types.Address) (types.Address, error)
	GetAddressByID(id string) (types.Address, error)
	GetAddresses() ([]types.Address, error)
	UpdateAddressByID(id string, upd types.AddressUpdate) (types.Address, error)
	DeleteAddressByID(id string) error

	// MealPlan
	CreateMealPlan(m types.MealPlan) (types.MealPlan, error)
	GetMealPlanByID(id string) (types.MealPlan, error)
	GetMealPlans() ([]types.MealPlan, error)
	UpdateMealPlanByID(id string, upd types.MealPlanUpdate) (types.MealPlan, error)
	DeleteMealPlanByID(id string) error

	// DiningLocation
	CreateDiningLocation(d types.DiningLocation) (types.DiningLocation, error)
	GetDiningLocationByID(id string) (types.DiningLocation, error)
	GetDiningLocations() ([]types.DiningLocation, error)
	UpdateDiningLocationByID(id string, upd types.DiningLocationUpdate) (types.DiningLocation, error)
	DeleteDiningLocationByID(id string) error
}
