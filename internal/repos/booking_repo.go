package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"workersdeck/internal/domain"
)

type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking with no worker. Status comes from b.Status.
func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) error {
	const op = "repos.BookingRepo.Create"

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO bookings
	    (id, user_id, service_id, worker_id, booking_date, booking_time, address, status)
	  VALUES
	    (?,  ?,       ?,          NULL,      ?,            ?,            ?,       ?)
	`), b.ID, b.UserID, b.ServiceID, b.BookingDate, b.BookingTime, b.Address, b.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *BookingRepo) Get(ctx context.Context, id string) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.GetContext(ctx, &b, r.db.Rebind(`
		SELECT id, user_id, service_id, worker_id, booking_date, booking_time, address, status
		FROM bookings WHERE id = ?
	`), id)
	return b, err
}

// DeleteOwned deletes the booking only when userID requested it.
func (r *BookingRepo) DeleteOwned(ctx context.Context, id, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM bookings WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AssignWorker overwrites worker_id without checking that workerID is a
// worker.
func (r *BookingRepo) AssignWorker(ctx context.Context, id, workerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE bookings SET worker_id = ? WHERE id = ?`), workerID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateStatus only touches the row when workerID is the assigned worker.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, workerID string, status domain.BookingStatus) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE bookings SET status = ? WHERE id = ? AND worker_id = ?`), status, id, workerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ---------- Listings ----------

func (r *BookingRepo) ListForCustomer(ctx context.Context, userID string) ([]domain.CustomerBooking, error) {
	out := []domain.CustomerBooking{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT b.id, b.booking_date, b.booking_time, b.address,
		       s.name AS service_name, b.status, u.name AS worker_name
		FROM bookings b
		JOIN services s ON b.service_id = s.id
		LEFT JOIN users u ON b.worker_id = u.id
		WHERE b.user_id = ?
		ORDER BY b.booking_date, b.booking_time
	`), userID)
	return out, err
}

func (r *BookingRepo) ListForWorker(ctx context.Context, workerID string) ([]domain.WorkerBooking, error) {
	out := []domain.WorkerBooking{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT b.id, b.booking_date, b.booking_time, b.address, b.status,
		       u.name AS customer_name, s.name AS service_name
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN services s ON b.service_id = s.id
		WHERE b.worker_id = ?
		ORDER BY b.booking_date, b.booking_time
	`), workerID)
	return out, err
}

func (r *BookingRepo) ListAll(ctx context.Context) ([]domain.AdminBooking, error) {
	out := []domain.AdminBooking{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT b.id AS booking_id, b.booking_date, b.booking_time, b.address, b.status,
		       w.name AS worker_name, u.name AS user_name, s.name AS service_name
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN services s ON b.service_id = s.id
		LEFT JOIN users w ON b.worker_id = w.id
		ORDER BY b.booking_date DESC
	`)
	return out, err
}
