package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/hall-reservation/internal/model"
	"github.com/iliyamo/hall-reservation/internal/repository"
)

type reservationFixture struct {
	users        *fakeUserStore
	halls        *fakeHallStore
	catalog      *fakeCatalogStore
	reservations *fakeReservationStore
	svc          *ReservationService
	clock        time.Time
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	f := &reservationFixture{
		users:        newFakeUserStore(),
		halls:        newFakeHallStore(model.Hall{ID: 1, Name: "Grand Hall", Capacity: 300, IsActive: true}),
		catalog:      newFakeCatalogStore([]uint64{10, 11}, []uint64{20}),
		reservations: newFakeReservationStore(),
		clock:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewReservationService(f.users, f.halls, f.catalog, f.reservations)
	f.svc.now = func() time.Time { return f.clock }
	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := f.users.Create(context.Background(), &model.User{Email: email}); err != nil {
			t.Fatalf("seed user %s: %v", email, err)
		}
	}
	return f
}

func (f *reservationFixture) createInput(userID uint64) CreateInput {
	return CreateInput{
		UserID:     userID,
		HallID:     1,
		Date:       time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		ServiceIDs: []uint64{10, 11},
		OfferIDs:   []uint64{20},
	}
}

func TestCreateReservation(t *testing.T) {
	f := newReservationFixture(t)

	res, err := f.svc.Create(context.Background(), f.createInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.ID == 0 {
		t.Fatal("create did not assign an id")
	}
	if res.Status != model.ReservationApproved {
		t.Fatalf("status = %q, want %q", res.Status, model.ReservationApproved)
	}
	if !res.CreatedAt.Equal(f.clock) {
		t.Fatalf("created_at = %v, want %v", res.CreatedAt, f.clock)
	}
	if len(res.ServiceIDs) != 2 || len(res.OfferIDs) != 1 {
		t.Fatalf("attachments = %v / %v", res.ServiceIDs, res.OfferIDs)
	}
}

func TestCreateRejectsMissingReferences(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(in *CreateInput)
		wantErr error
	}{
		{"unknown user", func(in *CreateInput) { in.UserID = 99 }, repository.ErrUserNotFound},
		{"unknown hall", func(in *CreateInput) { in.HallID = 99 }, repository.ErrHallNotFound},
		{"unknown service", func(in *CreateInput) { in.ServiceIDs = []uint64{10, 99} }, repository.ErrServiceNotFound},
		{"unknown offer", func(in *CreateInput) { in.OfferIDs = []uint64{99} }, repository.ErrOfferNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newReservationFixture(t)
			in := f.createInput(1)
			tc.mutate(&in)

			_, err := f.svc.Create(context.Background(), in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if len(f.reservations.reservations) != 0 {
				t.Fatal("failed create persisted a reservation")
			}
		})
	}
}

func TestCreateAllowsOverlappingBookings(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	// Same hall, same date, different users. No exclusivity rule applies.
	if _, err := f.svc.Create(ctx, f.createInput(1)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := f.svc.Create(ctx, f.createInput(2)); err != nil {
		t.Fatalf("second create: %v", err)
	}
}

func TestCancelOwnership(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.createInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Cancel(ctx, res.ID, 2); !errors.Is(err, repository.ErrForbidden) {
		t.Fatalf("foreign cancel err = %v, want ErrForbidden", err)
	}
	got, err := f.reservations.GetByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != model.ReservationApproved {
		t.Fatalf("foreign cancel changed status to %q", got.Status)
	}

	cancelled, err := f.svc.Cancel(ctx, res.ID, 1)
	if err != nil {
		t.Fatalf("owner cancel: %v", err)
	}
	if cancelled.Status != model.ReservationCancelled {
		t.Fatalf("status = %q, want %q", cancelled.Status, model.ReservationCancelled)
	}
}

func TestCancelTwiceFails(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.createInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Cancel(ctx, res.ID, 1); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if _, err := f.svc.Cancel(ctx, res.ID, 1); !errors.Is(err, repository.ErrAlreadyCancelled) {
		t.Fatalf("second cancel err = %v, want ErrAlreadyCancelled", err)
	}
}

func TestCancelUnknownReservation(t *testing.T) {
	f := newReservationFixture(t)
	if _, err := f.svc.Cancel(context.Background(), 42, 1); !errors.Is(err, repository.ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}
}

func TestGetScopedToOwner(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.createInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Get(ctx, res.ID, 1); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := f.svc.Get(ctx, res.ID, 2); !errors.Is(err, repository.ErrForbidden) {
		t.Fatalf("foreign get err = %v, want ErrForbidden", err)
	}
}

func TestListForUserNewestFirst(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	var ids []uint64
	for i := 0; i < 3; i++ {
		f.clock = f.clock.Add(time.Hour)
		res, err := f.svc.Create(ctx, f.createInput(1))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, res.ID)
	}
	// A foreign reservation must not leak into the listing.
	if _, err := f.svc.Create(ctx, f.createInput(2)); err != nil {
		t.Fatalf("foreign create: %v", err)
	}

	list, err := f.svc.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []uint64{ids[2], ids[1], ids[0]} {
		if list[i].ID != want {
			t.Fatalf("list[%d].ID = %d, want %d", i, list[i].ID, want)
		}
	}
}

func TestCancelledReservationStaysListed(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.createInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Cancel(ctx, res.ID, 1); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	list, err := f.svc.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].Status != model.ReservationCancelled {
		t.Fatalf("status = %q, want %q", list[0].Status, model.ReservationCancelled)
	}
}
