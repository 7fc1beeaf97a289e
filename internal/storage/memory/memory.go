// Package memory provides an in-memory implementation of the
// storage.Storage interface: one map per resource type guarded by a
// single RWMutex.
//
// Nothing survives a restart. It exists for local experiments
// (storage_driver: "memory" in the config) and for handler tests, where
// spinning up a database file buys nothing.
//
// A sync.RWMutex is all the coordination this needs: reads take the
// shared lock, mutations take the exclusive lock. Records are structs
// copied by value on the way in and out, so callers can never mutate
// the store's copy behind its back.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meera-iyer/campus-dining-api/internal/storage"
	"github.com/meera-iyer/campus-dining-api/internal/types"
)

// Memory is the concrete implementation of storage.Storage.
type Memory struct {
	mu              sync.RWMutex
	persons         map[string]types.Person
	addresses       map[string]types.Address
	mealPlans       map[string]types.MealPlan
	diningLocations map[string]types.DiningLocation
}

// New returns an empty, ready-to-use store.
func New() *Memory {
	return &Memory{
		persons:         make(map[string]types.Person),
		addresses:       make(map[string]types.Address),
		mealPlans:       make(map[string]types.MealPlan),
		diningLocations: make(map[string]types.DiningLocation),
	}
}

// ── Person ───────────────────────────────────────────────────────────────

func (m *Memory) CreatePerson(p types.Person) (types.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if _, ok := m.persons[p.ID]; ok {
		return types.Person{}, storage.ErrDuplicateID
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	m.persons[p.ID] = p
	return p, nil
}

func (m *Memory) GetPersonByID(id string) (types.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.persons[id]
	if !ok {
		return types.Person{}, storage.ErrResourceNotFound
	}
	return p, nil
}

func (m *Memory) GetPersons() ([]types.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Person, 0, len(m.persons))
	for _, p := range m.persons {
		out = append(out, p)
	}
	return out, nil
}

func (m *Memory) UpdatePersonByID(id string, upd types.PersonUpdate) (types.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.persons[id]
	if !ok {
		return types.Person{}, storage.ErrResourceNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Email != nil {
		p.Email = *upd.Email
	}
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	p.UpdatedAt = time.Now().UTC()

	m.persons[id] = p
	return p, nil
}

func (m *Memory) DeletePersonByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.persons[id]; !ok {
		return storage.ErrResourceNotFound
	}
	delete(m.persons, id)
	return nil
}

// ── Address ──────────────────────────────────────────────────────────────

func (m *Memory) CreateAddress(a types.Address) (types.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	} else if _, ok := m.addresses[a.ID]; ok {
		return types.Address{}, storage.ErrDuplicateID
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	m.addresses[a.ID] = a
	return a, nil
}

func (m *Memory) GetAddressByID(id string) (types.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.addresses[id]
	if !ok {
		return types.Address{}, storage.ErrResourceNotFound
	}
	return a, nil
}

func (m *Memory) GetAddresses() ([]types.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Address, 0, len(m.addresses))
	for _, a := range m.addresses {
		out = append(out, a)
	}
	return out, nil
}

func (m *Memory) UpdateAddressByID(id string, upd types.AddressUpdate) (types.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.addresses[id]
	if !ok {
		return types.Address{}, storage.ErrResourceNotFound
	}
	if upd.Street != nil {
		a.Street = *upd.Street
	}
	if upd.City != nil {
		a.City = *upd.City
	}
	if upd.State != nil {
		a.State = *upd.State
	}
	if upd.PostalCode != nil {
		a.PostalCode = *upd.PostalCode
	}
	if upd.Country != nil {
		a.Country = *upd.Country
	}
	a.UpdatedAt = time.Now().UTC()

	m.addresses[id] = a
	return a, nil
}

func (m *Memory) DeleteAddressByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.addresses[id]; !ok {
		return storage.ErrResourceNotFound
	}
	delete(m.addresses, id)
	return nil
}

// ── MealPlan ─────────────────────────────────────────────────────────────

func (m *Memory) CreateMealPlan(plan types.MealPlan) (types.MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	} else if _, ok := m.mealPlans[plan.ID]; ok {
		return types.MealPlan{}, storage.ErrDuplicateID
	}
	now := time.Now().UTC()
	plan.CreatedAt, plan.UpdatedAt = now, now

	m.mealPlans[plan.ID] = plan
	return plan, nil
}

func (m *Memory) GetMealPlanByID(id string) (types.MealPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.mealPlans[id]
	if !ok {
		return types.MealPlan{}, storage.ErrResourceNotFound
	}
	return plan, nil
}

func (m *Memory) GetMealPlans() ([]types.MealPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.MealPlan, 0, len(m.mealPlans))
	for _, plan := range m.mealPlans {
		out = append(out, plan)
	}
	return out, nil
}

func (m *Memory) UpdateMealPlanByID(id string, upd types.MealPlanUpdate) (types.MealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, ok := m.mealPlans[id]
	if !ok {
		return types.MealPlan{}, storage.ErrResourceNotFound
	}
	if upd.Name != nil {
		plan.Name = *upd.Name
	}
	if upd.Type != nil {
		plan.Type = *upd.Type
	}
	if upd.Cost != nil {
		plan.Cost = upd.Cost
	}
	if upd.StartDate != nil {
		plan.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		plan.EndDate = upd.EndDate
	}
	plan.UpdatedAt = time.Now().UTC()

	m.mealPlans[id] = plan
	return plan, nil
}

func (m *Memory) DeleteMealPlanByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.mealPlans[id]; !ok {
		return storage.ErrResourceNotFound
	}
	delete(m.mealPlans, id)
	return nil
}

// ── DiningLocation ───────────────────────────────────────────────────────

func (m *Memory) CreateDiningLocation(d types.DiningLocation) (types.DiningLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	} else if _, ok := m.diningLocations[d.ID]; ok {
		return types.DiningLocation{}, storage.ErrDuplicateID
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now

	m.diningLocations[d.ID] = d
	return d, nil
}

func (m *Memory) GetDiningLocationByID(id string) (types.DiningLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.diningLocations[id]
	if !ok {
		return types.DiningLocation{}, storage.ErrResourceNotFound
	}
	return d, nil
}

func (m *Memory) GetDiningLocations() ([]types.DiningLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.DiningLocation, 0, len(m.diningLocations))
	for _, d := range m.diningLocations {
		out = append(out, d)
	}
	return out, nil
}

func (m *Memory) UpdateDiningLocationByID(id string, upd types.DiningLocationUpdate) (types.DiningLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.diningLocations[id]
	if !ok {
		return types.DiningLocation{}, storage.ErrResourceNotFound
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Capacity != nil {
		d.Capacity = *upd.Capacity
	}
	d.UpdatedAt = time.Now().UTC()

	m.diningLocations[id] = d
	return d, nil
}

func (m *Memory) DeleteDiningLocationByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.diningLocations[id]; !ok {
		return storage.ErrResourceNotFound
	}
	delete(m.diningLocations, id)
	return nil
}
