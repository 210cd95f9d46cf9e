package model

import "time"

// Service is an add-on attachable to a reservation (catering, decoration
// and so on). Rows live in the `services` table.
type Service struct {
	ID         uint64    `json:"id"`          // services.id
	Name       string    `json:"name"`        // services.name
	PriceCents uint32    `json:"price_cents"` // services.price_cents
	IsActive   bool      `json:"is_active"`   // services.is_active
	CreatedAt  time.Time `json:"created_at"`  // services.created_at
}

// Offer is a promotional discount attachable to a reservation.
// Rows live in the `offers` table.
type Offer struct {
	ID              uint64    `json:"id"`               // offers.id
	Title           string    `json:"title"`            // offers.title
	DiscountPercent uint8     `json:"discount_percent"` // offers.discount_percent
	IsActive        bool      `json:"is_active"`        // offers.is_active
	CreatedAt       time.Time `json:"created_at"`       // offers.created_at
}
