package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/hall-reservation/internal/model"
	"github.com/iliyamo/hall-reservation/internal/repository"
)

func newAuthService(users *fakeUserStore, halls *fakeHallStore) *AuthService {
	return NewAuthService(users, halls, "test-secret", 15, bcrypt.MinCost)
}

func TestSignupAndLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users, newFakeHallStore())
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "secret77",
		ConfirmPassword: "secret77",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("signup did not assign an id")
	}
	if u.PasswordHash == "secret77" {
		t.Fatal("password stored without hashing")
	}

	res, err := svc.Login(ctx, "ada@example.com", "secret77")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("login issued no token")
	}
	if want := "logged in with ada@example.com"; res.Message != want {
		t.Fatalf("message = %q, want %q", res.Message, want)
	}
	if res.UserInfo.ID != u.ID || res.UserInfo.Email != "ada@example.com" {
		t.Fatalf("user info = %+v", res.UserInfo)
	}
	if res.UserInfo.Favorites == nil || len(res.UserInfo.Favorites) != 0 {
		t.Fatalf("favorites = %v, want empty slice", res.UserInfo.Favorites)
	}
	if !res.HallInfo.IsZero() {
		t.Fatalf("hall info = %+v, want absent", res.HallInfo)
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users, newFakeHallStore())

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:           "ada@example.com",
		Password:        "secret77",
		ConfirmPassword: "secret78",
	})
	if !errors.Is(err, repository.ErrPasswordsNotEqual) {
		t.Fatalf("err = %v, want ErrPasswordsNotEqual", err)
	}
	if len(users.users) != 0 {
		t.Fatal("mismatched confirm still created a user")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeHallStore())
	ctx := context.Background()

	in := SignupInput{
		Email:           "ada@example.com",
		Password:        "secret77",
		ConfirmPassword: "secret77",
	}
	if _, err := svc.Signup(ctx, in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(ctx, in); !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeHallStore())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{
		Email:           "ada@example.com",
		Password:        "secret77",
		ConfirmPassword: "secret77",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// Unknown account and wrong password must be indistinguishable.
	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret77")
		if !errors.Is(err, repository.ErrWrongCredentials) {
			t.Fatalf("err = %v, want ErrWrongCredentials", err)
		}
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@example.com", "wrong123")
		if !errors.Is(err, repository.ErrWrongCredentials) {
			t.Fatalf("err = %v, want ErrWrongCredentials", err)
		}
	})
}

func TestLoginHallResolution(t *testing.T) {
	ctx := context.Background()
	hall := model.Hall{ID: 9, Name: "Grand Hall", Capacity: 300, IsActive: true}

	seed := func(t *testing.T, users *fakeUserStore, hallID *uint64) {
		t.Helper()
		hash, err := bcrypt.GenerateFromPassword([]byte("secret77"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if err := users.Create(ctx, &model.User{
			Email:        "owner@example.com",
			PasswordHash: string(hash),
			HallID:       hallID,
		}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	t.Run("resolved", func(t *testing.T) {
		users := newFakeUserStore()
		id := hall.ID
		seed(t, users, &id)
		svc := newAuthService(users, newFakeHallStore(hall))

		res, err := svc.Login(ctx, "owner@example.com", "secret77")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		got, ok := res.HallInfo.Resolved()
		if !ok {
			t.Fatalf("hall info = %+v, want resolved entity", res.HallInfo)
		}
		if got.Name != hall.Name {
			t.Fatalf("hall name = %q, want %q", got.Name, hall.Name)
		}
	})

	t.Run("dangling id degrades to bare id", func(t *testing.T) {
		users := newFakeUserStore()
		id := uint64(404)
		seed(t, users, &id)
		svc := newAuthService(users, newFakeHallStore(hall))

		res, err := svc.Login(ctx, "owner@example.com", "secret77")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if res.HallInfo.IsZero() {
			t.Fatal("hall info absent, want bare id")
		}
		if _, ok := res.HallInfo.Resolved(); ok {
			t.Fatal("dangling hall id resolved to an entity")
		}
		if res.HallInfo.ID() != 404 {
			t.Fatalf("hall id = %d, want 404", res.HallInfo.ID())
		}
	})

	t.Run("no hall", func(t *testing.T) {
		users := newFakeUserStore()
		seed(t, users, nil)
		svc := newAuthService(users, newFakeHallStore(hall))

		res, err := svc.Login(ctx, "owner@example.com", "secret77")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if !res.HallInfo.IsZero() {
			t.Fatalf("hall info = %+v, want absent", res.HallInfo)
		}
	})
}

func TestLoginMessageUsesStoredEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users, newFakeHallStore())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{
		Email:           "case@example.com",
		Password:        "secret77",
		ConfirmPassword: "secret77",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	res, err := svc.Login(ctx, "case@example.com", "secret77")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.HasSuffix(res.Message, "case@example.com") {
		t.Fatalf("message = %q", res.Message)
	}
}
