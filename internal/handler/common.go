// Package handler contains the Echo HTTP handlers. Handlers bind and
// shape-validate request bodies, delegate to the service layer and
// translate the domain's sentinel errors into HTTP responses; no
// business rule lives here.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hall-reservation/internal/repository"
)

// getUserID extracts the authenticated user id that the JWT middleware
// stored in the context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// respondError maps domain sentinels to HTTP responses. Anything that is
// not a known sentinel is an underlying store failure and becomes a 500
// without leaking the cause.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrWrongCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "wrong credentials"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrHallNotFound),
		errors.Is(err, repository.ErrServiceNotFound),
		errors.Is(err, repository.ErrOfferNotFound):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrPasswordsNotEqual):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
}
