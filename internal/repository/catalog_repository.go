package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hall-reservation/internal/model"
)

// CatalogRepo reads the services and offers attachable to reservations.
type CatalogRepo struct{ db *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListServices returns all active services ordered by name.
func (r *CatalogRepo) ListServices(ctx context.Context) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,name,price_cents,is_active,created_at FROM services WHERE is_active=1 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	services := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.PriceCents, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}

// ListOffers returns all active offers ordered by title.
func (r *CatalogRepo) ListOffers(ctx context.Context) ([]model.Offer, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,title,discount_percent,is_active,created_at FROM offers WHERE is_active=1 ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	offers := make([]model.Offer, 0)
	for rows.Next() {
		var o model.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.DiscountPercent, &o.IsActive, &o.CreatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return offers, nil
}

// MissingServices returns the subset of ids without a matching service
// row, in the order they were given. An empty result means every
// reference resolves.
func (r *CatalogRepo) MissingServices(ctx context.Context, ids []uint64) ([]uint64, error) {
	return r.missing(ctx, "services", ids)
}

// MissingOffers returns the subset of ids without a matching offer row.
func (r *CatalogRepo) MissingOffers(ctx context.Context, ids []uint64) ([]uint64, error) {
	return r.missing(ctx, "offers", ids)
}

func (r *CatalogRepo) missing(ctx context.Context, table string, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	// Deduplicate for the IN clause; the duplicates themselves are legal
	// on a reservation.
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	placeholders := make([]string, len(unique))
	args := make([]interface{}, len(unique))
	for i, id := range unique {
		placeholders[i] = "?"
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM "+table+" WHERE id IN ("+strings.Join(placeholders, ",")+")",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	found := make(map[uint64]struct{}, len(unique))
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var missing []uint64
	for _, id := range unique {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
