package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/hall-reservation/internal/model"
	"github.com/iliyamo/hall-reservation/internal/repository"
)

// UserService covers user self-service operations: favorites and
// profile management.
type UserService struct {
	users UserStore
	halls HallStore
}

func NewUserService(users UserStore, halls HallStore) *UserService {
	return &UserService{users: users, halls: halls}
}

// ToggleFavorite adds the hall to the user's favorites or removes it
// when already present. The toggle happens on a freshly loaded record
// and the full set is persisted back, so a pair of toggles restores the
// original favorites. It reports the updated sequence and whether the
// hall is now a favorite.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, hallID uint64) ([]uint64, bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	ok, err := s.halls.Exists(ctx, hallID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, fmt.Errorf("%w (id %d)", repository.ErrHallNotFound, hallID)
	}
	added := u.ToggleFavorite(hallID)
	if err := s.users.SaveFavorites(ctx, u.ID, u.Favorites); err != nil {
		return nil, false, err
	}
	return u.Favorites, added, nil
}

// Favorites returns the user's favorite halls in insertion order,
// resolving each id that still exists and degrading removed halls to
// bare identifiers.
func (s *UserService) Favorites(ctx context.Context, userID uint64) ([]model.HallRef, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs := make([]model.HallRef, 0, len(u.Favorites))
	for _, hid := range u.Favorites {
		hall, err := s.halls.GetByID(ctx, hid)
		if err != nil {
			if errors.Is(err, repository.ErrHallNotFound) {
				refs = append(refs, model.UnresolvedHall(hid))
				continue
			}
			return nil, err
		}
		refs = append(refs, model.ResolvedHall(hall))
	}
	return refs, nil
}

// Profile returns the redacted projection of the user.
func (s *UserService) Profile(ctx context.Context, userID uint64) (UserInfo, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserInfo{}, err
	}
	return NewUserInfo(u), nil
}

// UpdateProfile changes the user's first and last name.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, firstName, lastName string) (UserInfo, error) {
	if err := s.users.UpdateProfile(ctx, userID, firstName, lastName); err != nil {
		return UserInfo{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserInfo{}, err
	}
	return NewUserInfo(u), nil
}
