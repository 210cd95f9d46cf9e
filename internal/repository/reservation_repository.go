package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hall-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and their
// attached service/offer rows. A reservation and its attachment rows
// are written in one transaction so a failed insert never leaves a
// partial booking behind. All timestamps are stored in UTC.
type ReservationRepo struct{ db *sql.DB }

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts the reservation together with its service and offer
// attachments, then reads the row back to populate the generated id and
// the database-assigned timestamps.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, hall_id, date, status) VALUES (?,?,?,?)",
		res.UserID, res.HallID, res.Date.UTC(), res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	if err := insertAttachments(ctx, tx, "reservation_services", "service_id", res.ID, res.ServiceIDs); err != nil {
		return err
	}
	if err := insertAttachments(ctx, tx, "reservation_offers", "offer_id", res.ID, res.OfferIDs); err != nil {
		return err
	}

	// Read back the DB-assigned timestamps so the caller sees the stored row.
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM reservations WHERE id=?", res.ID).
		Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// insertAttachments bulk-inserts ordered attachment rows for a
// reservation. Duplicate ids are permitted and keep their positions.
func insertAttachments(ctx context.Context, tx *sql.Tx, table, column string, reservationID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	query := "INSERT INTO " + table + " (reservation_id, " + column + ", position) VALUES "
	args := make([]interface{}, 0, len(ids)*3)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?)"
		args = append(args, reservationID, id, i)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID fetches a reservation with its attachment sequences.
// Returns ErrReservationNotFound when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.QueryRowContext(ctx,
		"SELECT id,user_id,hall_id,date,status,created_at,updated_at FROM reservations WHERE id=? LIMIT 1",
		id).Scan(&res.ID, &res.UserID, &res.HallID, &res.Date, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if err := r.loadAttachments(ctx, []*model.Reservation{&res}); err != nil {
		return nil, err
	}
	return &res, nil
}

// Cancel transitions an approved reservation to cancelled. The UPDATE
// matches on the current status so the transition is a compare-and-set:
// of two concurrent cancels exactly one succeeds. Returns
// ErrAlreadyCancelled when the row exists but is already terminal and
// ErrReservationNotFound when there is no such row.
func (r *ReservationRepo) Cancel(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=? AND status=?",
		model.ReservationCancelled, id, model.ReservationApproved)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var status string
	err = r.db.QueryRowContext(ctx,
		"SELECT status FROM reservations WHERE id=? LIMIT 1", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if status == model.ReservationCancelled {
		return ErrAlreadyCancelled
	}
	return nil
}

// ListByUser returns all reservations of a user ordered by creation time
// descending (newest first), with attachment sequences populated. When
// the user has no reservations an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,user_id,hall_id,date,status,created_at,updated_at FROM reservations WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.HallID, &res.Date, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return reservations, nil
	}
	refs := make([]*model.Reservation, len(reservations))
	for i := range reservations {
		refs[i] = &reservations[i]
	}
	if err := r.loadAttachments(ctx, refs); err != nil {
		return nil, err
	}
	return reservations, nil
}

// loadAttachments populates ServiceIDs and OfferIDs for every given
// reservation with two queries total.
func (r *ReservationRepo) loadAttachments(ctx context.Context, reservations []*model.Reservation) error {
	index := make(map[uint64]*model.Reservation, len(reservations))
	placeholders := make([]string, 0, len(reservations))
	args := make([]interface{}, 0, len(reservations))
	for _, res := range reservations {
		res.ServiceIDs = make([]uint64, 0)
		res.OfferIDs = make([]uint64, 0)
		index[res.ID] = res
		placeholders = append(placeholders, "?")
		args = append(args, res.ID)
	}
	in := "(" + strings.Join(placeholders, ",") + ")"

	load := func(table, column string, assign func(*model.Reservation, uint64)) error {
		rows, err := r.db.QueryContext(ctx,
			"SELECT reservation_id, "+column+" FROM "+table+" WHERE reservation_id IN "+in+" ORDER BY reservation_id, position",
			args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var rid, id uint64
			if err := rows.Scan(&rid, &id); err != nil {
				return err
			}
			if res, ok := index[rid]; ok {
				assign(res, id)
			}
		}
		return rows.Err()
	}

	if err := load("reservation_services", "service_id", func(res *model.Reservation, id uint64) {
		res.ServiceIDs = append(res.ServiceIDs, id)
	}); err != nil {
		return err
	}
	return load("reservation_offers", "offer_id", func(res *model.Reservation, id uint64) {
		res.OfferIDs = append(res.OfferIDs, id)
	})
}
