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

// MealPlan CRUD. Same shape as person.go, plus NULL handling for the
// optional start_date / end_date columns (sql.NullString in, *time.Time
// out — see parseNullableTime in sqlite.go).

func (s *SQLite) CreateMealPlan(m types.MealPlan) (types.MealPlan, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now

	stmt, err := s.Db.Prepare(
		"INSERT INTO meal_plans (id, name, type, cost, start_date, end_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.MealPlan{}, fmt.Errorf("CreateMealPlan: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(m.ID, m.Name, m.Type, m.Cost,
		formatNullableTime(m.StartDate), formatNullableTime(m.EndDate),
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		if isDuplicate(err) {
			return types.MealPlan{}, storage.ErrDuplicateID
		}
		return types.MealPlan{}, fmt.Errorf("CreateMealPlan: exec: %w", err)
	}

	return m, nil
}

func (s *SQLite) GetMealPlanByID(id string) (types.MealPlan, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, type, cost, start_date, end_date, created_at, updated_at FROM meal_plans WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.MealPlan{}, fmt.Errorf("GetMealPlanByID: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		m                  types.MealPlan
		cost               float64
		start, end         sql.NullString
		createdAt, updated string
	)
	err = stmt.QueryRow(id).Scan(&m.ID, &m.Name, &m.Type, &cost,
		&start, &end, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MealPlan{}, storage.ErrResourceNotFound
		}
		return types.MealPlan{}, fmt.Errorf("GetMealPlanByID: scan: %w", err)
	}
	m.Cost = &cost

	if m.StartDate, err = parseNullableTime(start); err != nil {
		return types.MealPlan{}, fmt.Errorf("GetMealPlanByID: parse start_date: %w", err)
	}
	if m.EndDate, err = parseNullableTime(end); err != nil {
		return types.MealPlan{}, fmt.Errorf("GetMealPlanByID: parse end_date: %w", err)
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return types.MealPlan{}, fmt.Errorf("GetMealPlanByID: parse created_at: %w", err)
	}
	if m.UpdatedAt, err = parseTime(updated); err != nil {
		return types.MealPlan{}, fmt.Errorf("GetMealPlanByID: parse updated_at: %w", err)
	}

	return m, nil
}

func (s *SQLite) GetMealPlans() ([]types.MealPlan, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, type, cost, start_date, end_date, created_at, updated_at FROM meal_plans",
	)
	if err != nil {
		return nil, fmt.Errorf("GetMealPlans: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetMealPlans: query: %w", err)
	}
	defer rows.Close()

	plans := make([]types.MealPlan, 0)

	for rows.Next() {
		var (
			m                  types.MealPlan
			cost               float64
			start, end         sql.NullString
			createdAt, updated string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &cost,
			&start, &end, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("GetMealPlans: scan row: %w", err)
		}
		m.Cost = &cost
		if m.StartDate, err = parseNullableTime(start); err != nil {
			return nil, fmt.Errorf("GetMealPlans: parse start_date: %w", err)
		}
		if m.EndDate, err = parseNullableTime(end); err != nil {
			return nil, fmt.Errorf("GetMealPlans: parse end_date: %w", err)
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("GetMealPlans: parse created_at: %w", err)
		}
		if m.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("GetMealPlans: parse updated_at: %w", err)
		}
		plans = append(plans, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetMealPlans: rows iteration: %w", err)
	}

	return plans, nil
}

func (s *SQLite) UpdateMealPlanByID(id string, upd types.MealPlanUpdate) (types.MealPlan, error) {
	m, err := s.GetMealPlanByID(id)
	if err != nil {
		return types.MealPlan{}, err
	}

	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.Type != nil {
		m.Type = *upd.Type
	}
	if upd.Cost != nil {
		m.Cost = upd.Cost
	}
	if upd.StartDate != nil {
		m.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		m.EndDate = upd.EndDate
	}
	m.UpdatedAt = time.Now().UTC()

	stmt, err := s.Db.Prepare(
		"UPDATE meal_plans SET name = ?, type = ?, cost = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?",
	)
	if err != nil {
		return types.MealPlan{}, fmt.Errorf("UpdateMealPlanByID: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(m.Name, m.Type, m.Cost,
		formatNullableTime(m.StartDate), formatNullableTime(m.EndDate),
		formatTime(m.UpdatedAt), id); err != nil {
		return types.MealPlan{}, fmt.Errorf("UpdateMealPlanByID: exec: %w", err)
	}

	return m, nil
}

func (s *SQLite) DeleteMealPlanByID(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM meal_plans WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteMealPlanByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteMealPlanByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteMealPlanByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrResourceNotFound
	}

	return nil
}
