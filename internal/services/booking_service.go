package services

import (
	"context"

	"github.com/google/uuid"

	"workersdeck/internal/apperr"
	"workersdeck/internal/domain"
	"workersdeck/internal/repos"
	"workersdeck/internal/validate"
)

type BookingService struct {
	Bookings *repos.BookingRepo
}

func NewBookingService(bookings *repos.BookingRepo) *BookingService {
	return &BookingService{Bookings: bookings}
}

type NewBooking struct {
	ServiceID   string `json:"service_id" validate:"required"`
	BookingDate string `json:"booking_date" validate:"required,bdate"`
	BookingTime string `json:"booking_time" validate:"required,btime"`
	Address     string `json:"address" validate:"required"`
}

// Create records a Pending booking for requesterID with no worker.
func (s *BookingService) Create(ctx context.Context, requesterID string, in NewBooking) (domain.Booking, error) {
	if in.ServiceID == "" || in.BookingDate == "" || in.BookingTime == "" || in.Address == "" {
		return domain.Booking{}, apperr.BadRequest("All fields are required")
	}
	if err := validate.Struct(in); err != nil {
		return domain.Booking{}, apperr.BadRequest(err.Error())
	}
	b := domain.Booking{
		ID:          uuid.NewString(),
		UserID:      requesterID,
		ServiceID:   in.ServiceID,
		BookingDate: in.BookingDate,
		BookingTime: in.BookingTime,
		Address:     in.Address,
		Status:      domain.StatusPending,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return domain.Booking{}, apperr.Server("Booking failed. Try again later.", err)
	}
	return b, nil
}

// Cancel deletes the booking when requesterID owns it. A missing booking and
// someone else's booking are reported the same way.
func (s *BookingService) Cancel(ctx context.Context, bookingID, requesterID string) error {
	n, err := s.Bookings.DeleteOwned(ctx, bookingID, requesterID)
	if err != nil {
		return apperr.Server("Server error", err)
	}
	if n == 0 {
		return apperr.Forbidden("Unauthorized or booking not found")
	}
	return nil
}

// AssignWorker sets the booking's worker unconditionally. The bool reports
// whether a row changed; callers still treat false as success.
func (s *BookingService) AssignWorker(ctx context.Context, bookingID, workerID string) (bool, error) {
	if workerID == "" {
		return false, apperr.BadRequest("worker_id is required")
	}
	n, err := s.Bookings.AssignWorker(ctx, bookingID, workerID)
	if err != nil {
		return false, apperr.Server("Failed to assign worker.", err)
	}
	return n > 0, nil
}

type StatusChange struct {
	Status string `json:"status" validate:"bstatus"`
}

// UpdateStatus changes the status only when workerID is the assigned worker.
// A mismatch is not an error; the bool reports whether a row changed.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, workerID string, in StatusChange) (bool, error) {
	if err := validate.Struct(in); err != nil {
		return false, apperr.BadRequest("Invalid status value")
	}
	n, err := s.Bookings.UpdateStatus(ctx, bookingID, workerID, domain.BookingStatus(in.Status))
	if err != nil {
		return false, apperr.Server("Server error", err)
	}
	return n > 0, nil
}

func (s *BookingService) ListForCustomer(ctx context.Context, userID string) ([]domain.CustomerBooking, error) {
	out, err := s.Bookings.ListForCustomer(ctx, userID)
	if err != nil {
		return nil, apperr.Server("Server error", err)
	}
	return out, nil
}

func (s *BookingService) ListForWorker(ctx context.Context, workerID string) ([]domain.WorkerBooking, error) {
	out, err := s.Bookings.ListForWorker(ctx, workerID)
	if err != nil {
		return nil, apperr.Server("Server error", err)
	}
	return out, nil
}

func (s *BookingService) ListForAdmin(ctx context.Context) ([]domain.AdminBooking, error) {
	out, err := s.Bookings.ListAll(ctx)
	if err != nil {
		return nil, apperr.Server("Server error", err)
	}
	return out, nil
}
