package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meera-iyer/campus-dining-api/internal/storage"
	"github.com/meera-iyer/campus-dining-api/internal/types"
)

// DiningLocation CRUD. Same shape as person.go.

func (s *SQLite) CreateDiningLocation(d types.DiningLocation) (types.DiningLocation, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now

	stmt, err := s.Db.Prepare(
		"INSERT INTO dining_locations (id, name, capacity, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.DiningLocation{}, fmt.Errorf("CreateDiningLocation: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(d.ID, d.Name, d.Capacity,
		formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
	if err != nil {
		if isDuplicate(err) {
			return types.DiningLocation{}, storage.ErrDuplicateID
		}
		return types.DiningLocation{}, fmt.Errorf("CreateDiningLocation: exec: %w", err)
	}

	return d, nil
}

func (s *SQLite) GetDiningLocationByID(id string) (types.DiningLocation, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, capacity, created_at, updated_at FROM dining_locations WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.DiningLocation{}, fmt.Errorf("GetDiningLocationByID: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		d                  types.DiningLocation
		createdAt, updated string
	)
	err = stmt.QueryRow(id).Scan(&d.ID, &d.Name, &d.Capacity, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.DiningLocation{}, storage.ErrResourceNotFound
		}
		return types.DiningLocation{}, fmt.Errorf("GetDiningLocationByID: scan: %w", err)
	}

	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return types.DiningLocation{}, fmt.Errorf("GetDiningLocationByID: parse created_at: %w", err)
	}
	if d.UpdatedAt, err = parseTime(updated); err != nil {
		return types.DiningLocation{}, fmt.Errorf("GetDiningLocationByID: parse updated_at: %w", err)
	}

	return d, nil
}

func (s *SQLite) GetDiningLocations() ([]types.DiningLocation, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, capacity, created_at, updated_at FROM dining_locations",
	)
	if err != nil {
		return nil, fmt.Errorf("GetDiningLocations: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetDiningLocations: query: %w", err)
	}
	defer rows.Close()

	locations := make([]types.DiningLocation, 0)

	for rows.Next() {
		var (
			d                  types.DiningLocation
			createdAt, updated string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Capacity, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("GetDiningLocations: scan row: %w", err)
		}
		if d.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("GetDiningLocations: parse created_at: %w", err)
		}
		if d.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("GetDiningLocations: parse updated_at: %w", err)
		}
		locations = append(locations, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetDiningLocations: rows iteration: %w", err)
	}

	return locations, nil
}

func (s *SQLite) UpdateDiningLocationByID(id string, upd types.DiningLocationUpdate) (types.DiningLocation, error) {
	d, err := s.GetDiningLocationByID(id)
	if err != nil {
		return types.DiningLocation{}, err
	}

	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Capacity != nil {
		d.Capacity = *upd.Capacity
	}
	d.UpdatedAt = time.Now().UTC()

	stmt, err := s.Db.Prepare(
		"UPDATE dining_locations SET name = ?, capacity = ?, updated_at = ? WHERE id = ?",
	)
	if err != nil {
		return types.DiningLocation{}, fmt.Errorf("UpdateDiningLocationByID: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(d.Name, d.Capacity, formatTime(d.UpdatedAt), id); err != nil {
		return types.DiningLocation{}, fmt.Errorf("UpdateDiningLocationByID: exec: %w", err)
	}

	return d, nil
}

func (s *SQLite) DeleteDiningLocationByID(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM dining_locations WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteDiningLocationByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteDiningLocationByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteDiningLocationByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrResourceNotFound
	}

	return nil
}
