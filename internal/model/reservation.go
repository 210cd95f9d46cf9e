package model

import "time"

// Reservation statuses. A reservation starts out approved and may only
// transition to cancelled; cancelled is terminal.
const (
	ReservationApproved  = "approved"
	ReservationCancelled = "cancelled"
)

// Reservation records a user's booking of a hall for a date together
// with the attached catalog services and promotional offers.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user who made the reservation.
//  HallID     – hall being reserved.
//  Date       – booking date.
//  Status     – "approved" or "cancelled".
//  ServiceIDs – attached service ids in stored order (duplicates allowed).
//  OfferIDs   – attached offer ids in stored order.
//  CreatedAt  – creation timestamp, immutable after insert.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         uint64    `json:"id"`          // reservations.id
	UserID     uint64    `json:"user_id"`     // reservations.user_id
	HallID     uint64    `json:"hall_id"`     // reservations.hall_id
	Date       time.Time `json:"date"`        // reservations.date
	Status     string    `json:"status"`      // reservations.status
	ServiceIDs []uint64  `json:"service_ids"` // reservation_services, ordered by position
	OfferIDs   []uint64  `json:"offer_ids"`   // reservation_offers, ordered by position
	CreatedAt  time.Time `json:"created_at"`  // reservations.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // reservations.updated_at
}

// IsCancelled reports whether the reservation reached its terminal state.
func (r *Reservation) IsCancelled() bool { return r.Status == ReservationCancelled }
