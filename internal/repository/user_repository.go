package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hall-reservation/internal/model"
)

// UserRepo persists users and their favorites.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user with an empty favorites set and no hall link and
// populates the generated id. A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?,?,?,?)",
		u.Email, u.PasswordHash, u.FirstName, u.LastName)
	if err != nil {
		// MySQL 1062 = duplicate key on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email, favorites included.
// Returns ErrUserNotFound when no row matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx,
		"SELECT id,email,password_hash,first_name,last_name,hall_id,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id, favorites included.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getOne(ctx,
		"SELECT id,email,password_hash,first_name,last_name,hall_id,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	var hallID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&hallID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if hallID.Valid {
		hid := uint64(hallID.Int64)
		u.HallID = &hid
	}
	if u.Favorites, err = r.loadFavorites(ctx, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user with the given email is registered.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? LIMIT 1", email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateProfile persists new profile names for the user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET first_name=?, last_name=? WHERE id=?",
		firstName, lastName, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 when the names did not change; confirm
		// the user actually exists before reporting not found.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}
	}
	return nil
}

// SaveFavorites replaces the stored favorites of a user with the given
// hall ids, keeping their slice order as the insertion order. The
// rewrite runs in a single transaction so concurrent toggles never
// leave a partially written set.
func (r *UserRepo) SaveFavorites(ctx context.Context, userID uint64, hallIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_favorites WHERE user_id=?", userID); err != nil {
		return err
	}
	if len(hallIDs) > 0 {
		query := "INSERT INTO user_favorites (user_id, hall_id, position) VALUES "
		args := make([]interface{}, 0, len(hallIDs)*3)
		for i, hid := range hallIDs {
			if i > 0 {
				query += ","
			}
			query += "(?,?,?)"
			args = append(args, userID, hid, i)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *UserRepo) loadFavorites(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT hall_id FROM user_favorites WHERE user_id=? ORDER BY position", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	favorites := make([]uint64, 0)
	for rows.Next() {
		var hid uint64
		if err := rows.Scan(&hid); err != nil {
			return nil, err
		}
		favorites = append(favorites, hid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return favorites, nil
}
