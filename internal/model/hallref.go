package model

import "encoding/json"

// HallRef is a tagged reference to a hall at the API boundary. A hall
// linked from another entity is either resolved to the full entity or
// carried as a bare identifier, and callers must branch on the variant
// instead of sniffing a dynamic type. The zero value is the absent
// reference.
type HallRef struct {
	id   uint64
	hall *Hall
}

// UnresolvedHall returns a reference carrying only the hall identifier.
func UnresolvedHall(id uint64) HallRef { return HallRef{id: id} }

// ResolvedHall returns a reference carrying the full hall entity.
func ResolvedHall(h *Hall) HallRef { return HallRef{id: h.ID, hall: h} }

// IsZero reports whether the reference is absent.
func (r HallRef) IsZero() bool { return r.id == 0 && r.hall == nil }

// Resolved returns the hall entity and true when the reference was
// resolved; otherwise nil and false.
func (r HallRef) Resolved() (*Hall, bool) { return r.hall, r.hall != nil }

// ID returns the referenced hall identifier regardless of resolution.
func (r HallRef) ID() uint64 { return r.id }

// MarshalJSON renders the resolved entity when present, the raw id when
// only the identifier is known, and null for the absent reference.
func (r HallRef) MarshalJSON() ([]byte, error) {
	if r.hall != nil {
		return json.Marshal(r.hall)
	}
	if r.id != 0 {
		return json.Marshal(r.id)
	}
	return []byte("null"), nil
}
