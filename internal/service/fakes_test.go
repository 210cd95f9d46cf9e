package service

// In-memory fakes for the store contracts. They mimic the repository
// semantics closely enough for service tests: copies are handed out so
// mutations only become visible after an explicit save, and the
// reservation fake applies the same compare-and-set cancel rule as the
// SQL repository.

import (
	"context"
	"sort"

	"github.com/iliyamo/hall-reservation/internal/model"
	"github.com/iliyamo/hall-reservation/internal/repository"
)

type fakeUserStore struct {
	seq   uint64
	users map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	f.seq++
	u.ID = f.seq
	f.users[u.ID] = cloneUser(*u)
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (f *fakeUserStore) Exists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id uint64, firstName, lastName string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) SaveFavorites(_ context.Context, userID uint64, hallIDs []uint64) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Favorites = append([]uint64(nil), hallIDs...)
	f.users[userID] = u
	return nil
}

func cloneUser(u model.User) model.User {
	u.Favorites = append([]uint64(nil), u.Favorites...)
	return u
}

type fakeHallStore struct {
	halls map[uint64]model.Hall
}

func newFakeHallStore(halls ...model.Hall) *fakeHallStore {
	f := &fakeHallStore{halls: map[uint64]model.Hall{}}
	for _, h := range halls {
		f.halls[h.ID] = h
	}
	return f
}

func (f *fakeHallStore) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	h, ok := f.halls[id]
	if !ok {
		return nil, repository.ErrHallNotFound
	}
	return &h, nil
}

func (f *fakeHallStore) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := f.halls[id]
	return ok, nil
}

type fakeCatalogStore struct {
	services map[uint64]struct{}
	offers   map[uint64]struct{}
}

func newFakeCatalogStore(serviceIDs, offerIDs []uint64) *fakeCatalogStore {
	f := &fakeCatalogStore{
		services: map[uint64]struct{}{},
		offers:   map[uint64]struct{}{},
	}
	for _, id := range serviceIDs {
		f.services[id] = struct{}{}
	}
	for _, id := range offerIDs {
		f.offers[id] = struct{}{}
	}
	return f
}

func (f *fakeCatalogStore) MissingServices(_ context.Context, ids []uint64) ([]uint64, error) {
	return missingFrom(f.services, ids), nil
}

func (f *fakeCatalogStore) MissingOffers(_ context.Context, ids []uint64) ([]uint64, error) {
	return missingFrom(f.offers, ids), nil
}

func missingFrom(known map[uint64]struct{}, ids []uint64) []uint64 {
	var missing []uint64
	seen := map[uint64]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

type fakeReservationStore struct {
	seq          uint64
	reservations map[uint64]model.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reservations: map[uint64]model.Reservation{}}
}

func (f *fakeReservationStore) Create(_ context.Context, r *model.Reservation) error {
	f.seq++
	r.ID = f.seq
	f.reservations[r.ID] = cloneReservation(*r)
	return nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	c := cloneReservation(r)
	return &c, nil
}

func (f *fakeReservationStore) Cancel(_ context.Context, id uint64) error {
	r, ok := f.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	if r.Status == model.ReservationCancelled {
		return repository.ErrAlreadyCancelled
	}
	r.Status = model.ReservationCancelled
	f.reservations[id] = r
	return nil
}

func (f *fakeReservationStore) ListByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, cloneReservation(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func cloneReservation(r model.Reservation) model.Reservation {
	r.ServiceIDs = append([]uint64(nil), r.ServiceIDs...)
	r.OfferIDs = append([]uint64(nil), r.OfferIDs...)
	return r
}
