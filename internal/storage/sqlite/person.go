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

// ─────────────────────────────────────────────────────────────────────────────
// CreatePerson inserts a new row into the persons table.
//
// The id is generated here (not in the handler) so every backend makes
// the same guarantee: a record returned by Create always has an id and
// timestamps. A client-supplied id is kept as-is; the primary-key
// constraint turns a collision into storage.ErrDuplicateID.
//
// HOW PREPARED STATEMENTS PREVENT SQL INJECTION:
// ────────────────────────────────────────────────
// Prepared statements use placeholders (?). The database driver sends
// the query and the values separately, so the engine treats the values
// as pure data, never as SQL syntax.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreatePerson(p types.Person) (types.Person, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	stmt, err := s.Db.Prepare(
		"INSERT INTO persons (id, name, email, phone, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("CreatePerson: prepare: %w", err)
	}
	// defer ensures the statement is closed when this function returns,
	// even if we return early due to an error.
	defer stmt.Close()

	_, err = stmt.Exec(p.ID, p.Name, p.Email, p.Phone,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		if isDuplicate(err) {
			return types.Person{}, storage.ErrDuplicateID
		}
		return types.Person{}, fmt.Errorf("CreatePerson: exec: %w", err)
	}

	return p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetPersonByID fetches exactly one person row matched by primary key.
//
// QueryRow returns a single-row result; the "no rows" condition only
// surfaces when Scan is called, as the sql.ErrNoRows sentinel. We
// translate it to storage.ErrResourceNotFound so handlers never need to
// import database/sql.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetPersonByID(id string) (types.Person, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, phone, created_at, updated_at FROM persons WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("GetPersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		p                  types.Person
		createdAt, updated string
	)
	err = stmt.QueryRow(id).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Person{}, storage.ErrResourceNotFound
		}
		return types.Person{}, fmt.Errorf("GetPersonByID: scan: %w", err)
	}

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return types.Person{}, fmt.Errorf("GetPersonByID: parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return types.Person{}, fmt.Errorf("GetPersonByID: parse updated_at: %w", err)
	}

	return p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetPersons returns all person rows as a slice.
//
// Query (unlike QueryRow) returns *sql.Rows — a cursor over multiple
// rows. Always defer rows.Close() to release the database connection,
// and check rows.Err() after the loop for iteration errors.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetPersons() ([]types.Person, error) {
	stmt, err := s.Db.Prepare(
		// Explicitly list columns — never use SELECT * in production code.
		"SELECT id, name, email, phone, created_at, updated_at FROM persons",
	)
	if err != nil {
		return nil, fmt.Errorf("GetPersons: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetPersons: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice.
	// Returning [] instead of null in JSON is better API behaviour.
	persons := make([]types.Person, 0)

	for rows.Next() {
		var (
			p                  types.Person
			createdAt, updated string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("GetPersons: scan row: %w", err)
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("GetPersons: parse created_at: %w", err)
		}
		if p.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("GetPersons: parse updated_at: %w", err)
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetPersons: rows iteration: %w", err)
	}

	return persons, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdatePersonByID merges the non-nil fields of upd into the stored
// record and bumps updated_at.
//
// Read-merge-write keeps the partial-update logic in one obvious place
// instead of building a dynamic SET clause. The read also gives us the
// 404 check for free.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdatePersonByID(id string, upd types.PersonUpdate) (types.Person, error) {
	p, err := s.GetPersonByID(id)
	if err != nil {
		return types.Person{}, err
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

	stmt, err := s.Db.Prepare(
		"UPDATE persons SET name = ?, email = ?, phone = ?, updated_at = ? WHERE id = ?",
	)
	if err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(p.Name, p.Email, p.Phone, formatTime(p.UpdatedAt), id); err != nil {
		return types.Person{}, fmt.Errorf("UpdatePersonByID: exec: %w", err)
	}

	return p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DeletePersonByID removes a person row by primary key.
//
// RowsAffected tells us whether anything was actually deleted — zero
// rows means the id never existed, which the handler must report as 404.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeletePersonByID(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM persons WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeletePersonByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeletePersonByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeletePersonByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrResourceNotFound
	}

	return nil
}
