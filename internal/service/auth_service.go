package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/hall-reservation/internal/model"
	"github.com/iliyamo/hall-reservation/internal/repository"
	"github.com/iliyamo/hall-reservation/internal/utils"
)

// AuthService implements the signup and login flows. Both operations
// are terminal: they either produce a user/session or fail with one of
// the sentinel errors from the repository package. The service never
// formats user-facing text beyond the login message; translation to
// HTTP responses is the handler's job.
type AuthService struct {
	users      UserStore
	halls      HallStore
	jwtSecret  string
	tokenTTL   int // minutes
	bcryptCost int
}

func NewAuthService(users UserStore, halls HallStore, jwtSecret string, tokenTTLMin, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		halls:      halls,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTLMin,
		bcryptCost: bcryptCost,
	}
}

// SignupInput carries the already shape-validated signup fields.
type SignupInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Signup registers a new user. It fails with ErrPasswordsNotEqual when
// the confirmation differs from the password (checked before hashing)
// and with ErrEmailExists when the email is already registered. The
// created user starts with an empty favorites set and no hall link.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, repository.ErrPasswordsNotEqual
	}
	exists, err := s.users.Exists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Favorites:    []uint64{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginResult is the successful login payload: a message, the redacted
// user projection, the hall reference of the user (resolved entity when
// it loads, bare id otherwise, absent when the user owns no hall) and
// the opaque session token.
type LoginResult struct {
	Message  string        `json:"message"`
	UserInfo UserInfo      `json:"user_info"`
	HallInfo model.HallRef `json:"hall_info"`
	Token    string        `json:"token"`
}

// Login verifies credentials and issues a session token. An unknown
// email and a wrong password both fail with ErrWrongCredentials so the
// response does not reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, repository.ErrWrongCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, repository.ErrWrongCredentials
	}

	tok, err := utils.NewSessionToken(s.jwtSecret, u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	hallInfo, err := s.resolveHall(ctx, u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Message:  fmt.Sprintf("logged in with %s", u.Email),
		UserInfo: NewUserInfo(u),
		HallInfo: hallInfo,
		Token:    tok.Token,
	}, nil
}

// resolveHall loads the user's linked hall when there is one. A hall id
// that no longer resolves degrades to the bare identifier instead of
// failing the login; a store failure still propagates.
func (s *AuthService) resolveHall(ctx context.Context, u *model.User) (model.HallRef, error) {
	if u.HallID == nil {
		return model.HallRef{}, nil
	}
	hall, err := s.halls.GetByID(ctx, *u.HallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return model.UnresolvedHall(*u.HallID), nil
		}
		return model.HallRef{}, err
	}
	return model.ResolvedHall(hall), nil
}
