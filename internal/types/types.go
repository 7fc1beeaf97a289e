// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
//
// Every resource follows the same shape:
//
//   - A resource-prefixed UUID identifier ("person_id", "meal_plan_id", …).
//     The server generates it on create, but clients may supply their own —
//     in that case it must be a valid UUID4 and must not already exist.
//
//   - created_at / updated_at timestamps in UTC, owned entirely by the
//     storage layer. Values sent by clients are ignored.
//
// Each resource also has a companion <Resource>Update struct used for
// PUT requests. All of its fields are POINTERS: a nil pointer means
// "the client did not send this field, leave it alone", while a non-nil
// pointer means "set the field to this value". This is how a partial
// update is distinguished from "set to the zero value".
package types

import "time"

// Person represents a person record — a student, staff member, or guest
// who can hold a meal plan.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (snake_case names match the API's conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-zero / non-empty.
type Person struct {
	ID        string    `json:"person_id"  validate:"omitempty,uuid4"`
	Name      string    `json:"name"       validate:"required"`
	Email     string    `json:"email"      validate:"required,email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonUpdate is the partial-update payload for PUT /person/{id}.
// The id always comes from the URL path, never from the body.
type PersonUpdate struct {
	Name  *string `json:"name"  validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

// Address represents a postal address record.
type Address struct {
	ID         string    `json:"address_id" validate:"omitempty,uuid4"`
	Street     string    `json:"street"     validate:"required"`
	City       string    `json:"city"       validate:"required"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Country    string    `json:"country,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddressUpdate is the partial-update payload for PUT /address/{id}.
type AddressUpdate struct {
	Street     *string `json:"street" validate:"omitempty,min=1"`
	City       *string `json:"city"   validate:"omitempty,min=1"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

// MealPlan represents a purchasable meal plan, e.g. "Unlimited 7 day".
//
// Cost is the price in USD. It is a pointer so that an absent field can
// be told apart from a legitimate zero: 0 is a valid cost (a free promo
// plan), but leaving cost out entirely is a validation failure. With a
// plain float64 both would decode to 0 and the distinction is lost.
//
// StartDate / EndDate mark the period the plan is officially valid for;
// both are optional (a plan can be defined before its dates are known).
type MealPlan struct {
	ID        string     `json:"meal_plan_id" validate:"omitempty,uuid4"`
	Name      string     `json:"name" validate:"required"`
	Type      string     `json:"type" validate:"required"`
	Cost      *float64   `json:"cost" validate:"required,gte=0"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MealPlanUpdate is the partial-update payload for PUT /meal-plan/{id}.
type MealPlanUpdate struct {
	Name      *string    `json:"name" validate:"omitempty,min=1"`
	Type      *string    `json:"type" validate:"omitempty,min=1"`
	Cost      *float64   `json:"cost" validate:"omitempty,gte=0"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// DiningLocation represents a dining hall or café on campus,
// e.g. "Grace Dodge" with capacity 200.
type DiningLocation struct {
	ID        string    `json:"dining_location_id" validate:"omitempty,uuid4"`
	Name      string    `json:"name"     validate:"required"`
	Capacity  int       `json:"capacity" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiningLocationUpdate is the partial-update payload for
// PUT /dining-location/{id}.
type DiningLocationUpdate struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
}
