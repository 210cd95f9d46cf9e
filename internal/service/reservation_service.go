package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/hall-reservation/internal/model"
	"github.com/iliyamo/hall-reservation/internal/repository"
)

// ReservationService enforces the reservation lifecycle: reference
// validation on create, ownership and state checks on cancel. Every
// referenced entity is validated before anything is persisted, so a
// failed create leaves no partial record behind.
type ReservationService struct {
	users        UserStore
	halls        HallStore
	catalog      CatalogStore
	reservations ReservationStore
	now          func() time.Time
}

func NewReservationService(users UserStore, halls HallStore, catalog CatalogStore, reservations ReservationStore) *ReservationService {
	return &ReservationService{
		users:        users,
		halls:        halls,
		catalog:      catalog,
		reservations: reservations,
		now:          time.Now,
	}
}

// CreateInput carries the already shape-validated reservation fields.
type CreateInput struct {
	UserID     uint64
	HallID     uint64
	Date       time.Time
	ServiceIDs []uint64
	OfferIDs   []uint64
}

// Create validates every reference and persists an approved
// reservation. Missing references fail with the sentinel naming the
// entity kind (ErrUserNotFound, ErrHallNotFound, ErrServiceNotFound,
// ErrOfferNotFound), each wrapped with the offending id. Two approved
// reservations for the same hall and date are allowed.
func (s *ReservationService) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	ok, err := s.halls.Exists(ctx, in.HallID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w (id %d)", repository.ErrHallNotFound, in.HallID)
	}
	missing, err := s.catalog.MissingServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w (id %d)", repository.ErrServiceNotFound, missing[0])
	}
	missing, err = s.catalog.MissingOffers(ctx, in.OfferIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w (id %d)", repository.ErrOfferNotFound, missing[0])
	}

	res := &model.Reservation{
		UserID:     in.UserID,
		HallID:     in.HallID,
		Date:       in.Date.UTC(),
		Status:     model.ReservationApproved,
		ServiceIDs: in.ServiceIDs,
		OfferIDs:   in.OfferIDs,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Cancel transitions an approved reservation to cancelled on behalf of
// its owner. It fails with ErrReservationNotFound when the reservation
// does not exist, ErrForbidden when the requester is not the owner and
// ErrAlreadyCancelled when the reservation is already terminal:
// cancelling twice is an error, not a no-op. The state change itself is
// a compare-and-set in the store, so a concurrent double cancel also
// surfaces ErrAlreadyCancelled rather than silently passing.
func (s *ReservationService) Cancel(ctx context.Context, reservationID, requestingUserID uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.UserID != requestingUserID {
		return nil, repository.ErrForbidden
	}
	if res.IsCancelled() {
		return nil, repository.ErrAlreadyCancelled
	}
	if err := s.reservations.Cancel(ctx, reservationID); err != nil {
		return nil, err
	}
	res.Status = model.ReservationCancelled
	return res, nil
}

// Get returns a single reservation scoped to its owner.
func (s *ReservationService) Get(ctx context.Context, reservationID, requestingUserID uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.UserID != requestingUserID {
		return nil, repository.ErrForbidden
	}
	return res, nil
}

// ListForUser returns the user's reservations newest first.
func (s *ReservationService) ListForUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}
