package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hall-reservation/internal/model"
)

// HallRepo reads hall catalog data. Halls are reference data for
// reservations and favorites; this service does not create them.
type HallRepo struct{ db *sql.DB }

func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

const hallColumns = "id,name,description,location,capacity,is_active,created_at,updated_at"

// GetByID fetches one hall. Returns ErrHallNotFound when absent.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	var h model.Hall
	var desc, loc sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT "+hallColumns+" FROM halls WHERE id=? LIMIT 1", id).Scan(
		&h.ID, &h.Name, &desc, &loc, &h.Capacity, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	if desc.Valid {
		h.Description = &desc.String
	}
	if loc.Valid {
		h.Location = &loc.String
	}
	return &h, nil
}

// Exists reports whether a hall with the given id exists.
func (r *HallRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM halls WHERE id=? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListActive returns all halls open for booking, ordered by name.
func (r *HallRepo) ListActive(ctx context.Context) ([]model.Hall, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+hallColumns+" FROM halls WHERE is_active=1 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	halls := make([]model.Hall, 0)
	for rows.Next() {
		var h model.Hall
		var desc, loc sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &desc, &loc, &h.Capacity, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			h.Description = &desc.String
		}
		if loc.Valid {
			h.Location = &loc.String
		}
		halls = append(halls, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return halls, nil
}
