// Package repository defines the data access layer and the sentinel
// error values shared across repositories and the service layer.
// These sentinels let handlers distinguish failure scenarios with
// errors.Is and translate them into HTTP responses; any error that is
// not one of these values is an underlying store failure and maps to
// an internal server error.
package repository

import "errors"

// ErrEmailExists is returned when a signup uses an already registered email.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches nothing.
var ErrUserNotFound = errors.New("user not found")

// ErrHallNotFound is returned when a referenced hall does not exist.
var ErrHallNotFound = errors.New("hall not found")

// ErrServiceNotFound is returned when a referenced service does not exist.
var ErrServiceNotFound = errors.New("service not found")

// ErrOfferNotFound is returned when a referenced offer does not exist.
var ErrOfferNotFound = errors.New("offer not found")

// ErrReservationNotFound is returned when a reservation lookup matches nothing.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyCancelled is returned when cancelling a reservation that has
// already reached its terminal cancelled state.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")

// ErrWrongCredentials is returned for any login failure. Both an unknown
// email and a bad password map here so responses do not leak which
// accounts exist.
var ErrWrongCredentials = errors.New("wrong credentials")

// ErrPasswordsNotEqual is returned when the signup password and its
// confirmation differ.
var ErrPasswordsNotEqual = errors.New("passwords do not match")
