// Package queue defines the reservation lifecycle events exchanged over
// the message broker, their publisher and the background consumer that
// writes them to a log file.
package queue

import (
	"time"

	"github.com/iliyamo/hall-reservation/internal/model"
)

// ReservationEvent is published whenever a reservation is created or
// cancelled. It carries enough information for downstream consumers to
// log, notify or feed analytics without querying the primary database.
type ReservationEvent struct {
	ReservationID uint64   `json:"reservation_id"`
	UserID        uint64   `json:"user_id"`
	HallID        uint64   `json:"hall_id"`
	Date          string   `json:"date"`
	Status        string   `json:"status"`
	ServiceIDs    []uint64 `json:"service_ids,omitempty"`
	OfferIDs      []uint64 `json:"offer_ids,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}

// NewReservationEvent builds the event payload for a reservation's
// current state.
func NewReservationEvent(r *model.Reservation) ReservationEvent {
	return ReservationEvent{
		ReservationID: r.ID,
		UserID:        r.UserID,
		HallID:        r.HallID,
		Date:          r.Date.UTC().Format("2006-01-02"),
		Status:        r.Status,
		ServiceIDs:    r.ServiceIDs,
		OfferIDs:      r.OfferIDs,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
