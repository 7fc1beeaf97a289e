package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meera-iyer/campus-dining-api/internal/config"
	"github.com/meera-iyer/campus-dining-api/internal/storage"
	"github.com/meera-iyer/campus-dining-api/internal/types"
)

// newTestStore opens a fresh database file in a per-test temp directory.
// t.TempDir is cleaned up automatically when the test finishes.
func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(&config.Config{StoragePath: dbPath})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Person(t *testing.T) {
	store := newTestStore(t)

	t.Run("Create generates id and timestamps", func(t *testing.T) {
		created, err := store.CreatePerson(types.Person{
			Name:  "Alice",
			Email: "alice@columbia.edu",
			Phone: "+1 212 555 0100",
		})
		if err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}
		if created.ID == "" {
			t.Error("expected person ID to be generated")
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("Get round-trips every field", func(t *testing.T) {
		created, err := store.CreatePerson(types.Person{
			Name:  "Bob",
			Email: "bob@columbia.edu",
		})
		if err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}

		got, err := store.GetPersonByID(created.ID)
		if err != nil {
			t.Fatalf("GetPersonByID failed: %v", err)
		}
		if got.ID != created.ID || got.Name != created.Name ||
			got.Email != created.Email || got.Phone != created.Phone {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, created)
		}
		if !got.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("created_at mismatch: got %v, want %v", got.CreatedAt, created.CreatedAt)
		}
	})

	t.Run("Duplicate client-supplied id is rejected", func(t *testing.T) {
		const id = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
		if _, err := store.CreatePerson(types.Person{
			ID: id, Name: "Carol", Email: "carol@columbia.edu",
		}); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}
		_, err := store.CreatePerson(types.Person{
			ID: id, Name: "Carol Again", Email: "carol2@columbia.edu",
		})
		if !errors.Is(err, storage.ErrDuplicateID) {
			t.Errorf("expected ErrDuplicateID, got %v", err)
		}
	})

	t.Run("Update merges and bumps updated_at", func(t *testing.T) {
		created, err := store.CreatePerson(types.Person{
			Name:  "Dan",
			Email: "dan@columbia.edu",
			Phone: "+1 212 555 0111",
		})
		if err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}

		newName := "Daniel"
		updated, err := store.UpdatePersonByID(created.ID, types.PersonUpdate{Name: &newName})
		if err != nil {
			t.Fatalf("UpdatePersonByID failed: %v", err)
		}
		if updated.Name != newName {
			t.Errorf("expected name %s, got %s", newName, updated.Name)
		}
		if updated.Email != created.Email || updated.Phone != created.Phone {
			t.Error("update touched fields that were not supplied")
		}
		if updated.UpdatedAt.Before(created.UpdatedAt) {
			t.Error("expected updated_at to move forward")
		}

		// The merge must be visible on a fresh read too.
		got, err := store.GetPersonByID(created.ID)
		if err != nil {
			t.Fatalf("GetPersonByID failed: %v", err)
		}
		if got.Name != newName {
			t.Errorf("expected persisted name %s, got %s", newName, got.Name)
		}
	})

	t.Run("Unknown ids yield ErrResourceNotFound", func(t *testing.T) {
		const unknown = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
		if _, err := store.GetPersonByID(unknown); !errors.Is(err, storage.ErrResourceNotFound) {
			t.Errorf("get: expected ErrResourceNotFound, got %v", err)
		}
		if _, err := store.UpdatePersonByID(unknown, types.PersonUpdate{}); !errors.Is(err, storage.ErrResourceNotFound) {
			t.Errorf("update: expected ErrResourceNotFound, got %v", err)
		}
		if err := store.DeletePersonByID(unknown); !errors.Is(err, storage.ErrResourceNotFound) {
			t.Errorf("delete: expected ErrResourceNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_MealPlanDates(t *testing.T) {
	store := newTestStore(t)

	start := time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Dates round-trip through the database", func(t *testing.T) {
		cost := 1000.0
		created, err := store.CreateMealPlan(types.MealPlan{
			Name:      "Unlimited 7 day",
			Type:      "swipes",
			Cost:      &cost,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		got, err := store.GetMealPlanByID(created.ID)
		if err != nil {
			t.Fatalf("GetMealPlanByID failed: %v", err)
		}
		if got.StartDate == nil || !got.StartDate.Equal(start) {
			t.Errorf("start_date mismatch: got %v, want %v", got.StartDate, start)
		}
		if got.EndDate == nil || !got.EndDate.Equal(end) {
			t.Errorf("end_date mismatch: got %v, want %v", got.EndDate, end)
		}
		if got.Cost == nil || *got.Cost != 1000 {
			t.Errorf("cost mismatch: got %v, want 1000", got.Cost)
		}
	})

	t.Run("Absent dates stay NULL", func(t *testing.T) {
		cost := 800.0
		created, err := store.CreateMealPlan(types.MealPlan{
			Name: "Unlimited 5 day",
			Type: "swipes",
			Cost: &cost,
		})
		if err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		got, err := store.GetMealPlanByID(created.ID)
		if err != nil {
			t.Fatalf("GetMealPlanByID failed: %v", err)
		}
		if got.StartDate != nil || got.EndDate != nil {
			t.Errorf("expected nil dates, got start=%v end=%v", got.StartDate, got.EndDate)
		}
	})

	t.Run("Partial update changes only the cost", func(t *testing.T) {
		cost := 200.0
		created, err := store.CreateMealPlan(types.MealPlan{
			Name:      "Flex 200",
			Type:      "points",
			Cost:      &cost,
			StartDate: &start,
		})
		if err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		newCost := 500.0
		updated, err := store.UpdateMealPlanByID(created.ID, types.MealPlanUpdate{Cost: &newCost})
		if err != nil {
			t.Fatalf("UpdateMealPlanByID failed: %v", err)
		}
		if updated.Cost == nil || *updated.Cost != newCost {
			t.Errorf("expected cost %v, got %v", newCost, updated.Cost)
		}
		if updated.Name != created.Name || updated.Type != created.Type {
			t.Error("update touched fields that were not supplied")
		}
		if updated.StartDate == nil || !updated.StartDate.Equal(start) {
			t.Error("update touched start_date which was not supplied")
		}
	})
}

func TestSQLiteStore_ListCounts(t *testing.T) {
	store := newTestStore(t)

	empty, err := store.GetAddresses()
	if err != nil {
		t.Fatalf("GetAddresses failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", empty)
	}

	const n, m = 4, 1
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		created, err := store.CreateAddress(types.Address{
			Street: "525 W 120th St",
			City:   "New York",
			State:  "NY",
		})
		if err != nil {
			t.Fatalf("CreateAddress failed: %v", err)
		}
		ids = append(ids, created.ID)
	}
	for i := 0; i < m; i++ {
		if err := store.DeleteAddressByID(ids[i]); err != nil {
			t.Fatalf("DeleteAddressByID failed: %v", err)
		}
	}

	remaining, err := store.GetAddresses()
	if err != nil {
		t.Fatalf("GetAddresses failed: %v", err)
	}
	if len(remaining) != n-m {
		t.Errorf("expected %d records after %d creates and %d deletes, got %d",
			n-m, n, m, len(remaining))
	}
}

func TestSQLiteStore_SchemaIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	cfg := &config.Config{StoragePath: dbPath}

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	created, err := first.CreateDiningLocation(types.DiningLocation{
		Name:     "Grace Dodge",
		Capacity: 200,
	})
	if err != nil {
		t.Fatalf("CreateDiningLocation failed: %v", err)
	}
	first.Close()

	// Reopening the same file must not wipe existing data.
	second, err := New(cfg)
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	defer second.Close()

	got, err := second.GetDiningLocationByID(created.ID)
	if err != nil {
		t.Fatalf("GetDiningLocationByID after reopen failed: %v", err)
	}
	if got.Name != "Grace Dodge" || got.Capacity != 200 {
		t.Errorf("record changed across reopen: %+v", got)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file to exist: %v", err)
	}
}
