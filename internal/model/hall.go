package model

import "time"

// Hall represents a bookable venue from the catalog. Halls are
// referenced by reservations and by user favorites. Each hall
// corresponds to a row in the `halls` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – venue name.
//  Description – optional description of the hall.
//  Location    – optional address or area string.
//  Capacity    – number of guests the hall accommodates.
//  IsActive    – whether the hall is open for booking.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Hall struct {
	ID          uint64    `json:"id"`          // halls.id
	Name        string    `json:"name"`        // halls.name
	Description *string   `json:"description"` // halls.description (nullable)
	Location    *string   `json:"location"`    // halls.location (nullable)
	Capacity    uint32    `json:"capacity"`    // halls.capacity
	IsActive    bool      `json:"is_active"`   // halls.is_active
	CreatedAt   time.Time `json:"created_at"`  // halls.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // halls.updated_at
}
