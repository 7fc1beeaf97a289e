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

// Address CRUD. Same shape as person.go — see that file for the
// detailed walkthrough of the prepared-statement and error-mapping
// conventions.

func (s *SQLite) CreateAddress(a types.Address) (types.Address, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	stmt, err := s.Db.Prepare(
		"INSERT INTO addresses (id, street, city, state, postal_code, country, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Address{}, fmt.Errorf("CreateAddress: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(a.ID, a.Street, a.City, a.State, a.PostalCode, a.Country,
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		if isDuplicate(err) {
			return types.Address{}, storage.ErrDuplicateID
		}
		return types.Address{}, fmt.Errorf("CreateAddress: exec: %w", err)
	}

	return a, nil
}

func (s *SQLite) GetAddressByID(id string) (types.Address, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, street, city, state, postal_code, country, created_at, updated_at FROM addresses WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Address{}, fmt.Errorf("GetAddressByID: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		a                  types.Address
		createdAt, updated string
	)
	err = stmt.QueryRow(id).Scan(&a.ID, &a.Street, &a.City, &a.State,
		&a.PostalCode, &a.Country, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Address{}, storage.ErrResourceNotFound
		}
		return types.Address{}, fmt.Errorf("GetAddressByID: scan: %w", err)
	}

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return types.Address{}, fmt.Errorf("GetAddressByID: parse created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTime(updated); err != nil {
		return types.Address{}, fmt.Errorf("GetAddressByID: parse updated_at: %w", err)
	}

	return a, nil
}

func (s *SQLite) GetAddresses() ([]types.Address, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, street, city, state, postal_code, country, created_at, updated_at FROM addresses",
	)
	if err != nil {
		return nil, fmt.Errorf("GetAddresses: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetAddresses: query: %w", err)
	}
	defer rows.Close()

	addresses := make([]types.Address, 0)

	for rows.Next() {
		var (
			a                  types.Address
			createdAt, updated string
		)
		if err := rows.Scan(&a.ID, &a.Street, &a.City, &a.State,
			&a.PostalCode, &a.Country, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("GetAddresses: scan row: %w", err)
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("GetAddresses: parse created_at: %w", err)
		}
		if a.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("GetAddresses: parse updated_at: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAddresses: rows iteration: %w", err)
	}

	return addresses, nil
}

func (s *SQLite) UpdateAddressByID(id string, upd types.AddressUpdate) (types.Address, error) {
	a, err := s.GetAddressByID(id)
	if err != nil {
		return types.Address{}, err
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

	stmt, err := s.Db.Prepare(
		"UPDATE addresses SET street = ?, city = ?, state = ?, postal_code = ?, country = ?, updated_at = ? WHERE id = ?",
	)
	if err != nil {
		return types.Address{}, fmt.Errorf("UpdateAddressByID: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(a.Street, a.City, a.State, a.PostalCode, a.Country,
		formatTime(a.UpdatedAt), id); err != nil {
		return types.Address{}, fmt.Errorf("UpdateAddressByID: exec: %w", err)
	}

	return a, nil
}

func (s *SQLite) DeleteAddressByID(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM addresses WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteAddressByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteAddressByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteAddressByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrResourceNotFound
	}

	return nil
}
