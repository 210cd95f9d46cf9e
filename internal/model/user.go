package model

import "time"

// User represents an application user record as stored in the
// `users` table together with the favorites loaded from the
// `user_favorites` table. The json tags are omitted here because
// these structs are used internally by the repository and service
// layers; handlers define separate response types with appropriate
// JSON tags and without the credential field.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FirstName    – given name.
//  LastName     – family name.
//  HallID       – id of the hall this user owns/manages (nil when none).
//  Favorites    – hall ids favorited by the user, insertion order preserved.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	HallID       *uint64   // users.hall_id (nullable)
	Favorites    []uint64  // user_favorites, ordered by position
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// ToggleFavorite flips hall membership in the user's favorites.
// Favorites behave as a set with deterministic insertion order: if the
// hall is already present it is removed, otherwise it is appended, so
// two toggles in a row restore the original set. The mutation is purely
// in-memory; the caller persists it through the user repository.
// It reports whether the hall is a favorite after the call.
func (u *User) ToggleFavorite(hallID uint64) bool {
	for i, id := range u.Favorites {
		if id == hallID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return false
		}
	}
	u.Favorites = append(u.Favorites, hallID)
	return true
}

// IsFavorite reports whether the given hall is in the user's favorites.
func (u *User) IsFavorite(hallID uint64) bool {
	for _, id := range u.Favorites {
		if id == hallID {
			return true
		}
	}
	return false
}
