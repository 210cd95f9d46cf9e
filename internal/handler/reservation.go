package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hall-reservation/internal/model"
	"github.com/iliyamo/hall-reservation/internal/queue"
	"github.com/iliyamo/hall-reservation/internal/service"
)

// ReservationHandler exposes the reservation lifecycle endpoints. All
// methods assume JWT authentication has been performed by middleware.
// After a successful create or cancel a lifecycle event is published to
// the message broker; publish failures are logged by the publisher and
// ignored so the booking outcome never depends on the broker.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations}
}

type createReservationReq struct {
	HallID     uint64   `json:"hall_id"`
	Date       string   `json:"date"` // YYYY-MM-DD
	ServiceIDs []uint64 `json:"service_ids"`
	OfferIDs   []uint64 `json:"offer_ids"`
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id required"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Create(ctx, service.CreateInput{
		UserID:     userID,
		HallID:     req.HallID,
		Date:       date,
		ServiceIDs: req.ServiceIDs,
		OfferIDs:   req.OfferIDs,
	})
	if err != nil {
		return respondError(c, err)
	}

	_ = queue.PublishReservationEvent(c.Request().Context(), queue.NewReservationEvent(res))

	return c.JSON(http.StatusCreated, res)
}

// Cancel handles POST /v1/reservations/:id/cancel. Only the owner may
// cancel; cancelling an already cancelled reservation is an error.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Cancel(ctx, reservationID, userID)
	if err != nil {
		return respondError(c, err)
	}

	_ = queue.PublishReservationEvent(c.Request().Context(), queue.NewReservationEvent(res))

	return c.JSON(http.StatusOK, res)
}

// Get handles GET /v1/reservations/:id for the reservation owner.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Get(ctx, reservationID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// List handles GET /v1/reservations and returns the caller's
// reservations newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListForUser(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": reservations})
}
