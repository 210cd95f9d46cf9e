// Package service implements the business operations of the hall
// reservation domain: the authentication flow, user favorites and
// profile updates, and the reservation lifecycle. Services are
// stateless; every store handle is an explicit dependency so tests can
// substitute in-memory fakes.
package service

import (
	"context"

	"github.com/iliyamo/hall-reservation/internal/model"
)

// UserStore is the identity store contract used by the services.
// Implemented by repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uint64, firstName, lastName string) error
	SaveFavorites(ctx context.Context, userID uint64, hallIDs []uint64) error
}

// HallStore is the hall catalog contract. Implemented by repository.HallRepo.
type HallStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	Exists(ctx context.Context, id uint64) (bool, error)
}

// CatalogStore resolves service and offer references. Implemented by
// repository.CatalogRepo.
type CatalogStore interface {
	MissingServices(ctx context.Context, ids []uint64) ([]uint64, error)
	MissingOffers(ctx context.Context, ids []uint64) ([]uint64, error)
}

// ReservationStore persists reservations. Implemented by
// repository.ReservationRepo.
type ReservationStore interface {
	Create(ctx context.Context, r *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	Cancel(ctx context.Context, id uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
}

// UserInfo is the redacted user projection exposed at the API boundary.
// It mirrors model.User minus the credential.
type UserInfo struct {
	ID        uint64   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	HallID    *uint64  `json:"hall_id,omitempty"`
	Favorites []uint64 `json:"favorites"`
}

// NewUserInfo strips the credential from a user record.
func NewUserInfo(u *model.User) UserInfo {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []uint64{}
	}
	return UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		HallID:    u.HallID,
		Favorites: favorites,
	}
}
