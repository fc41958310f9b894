package domain

type BookingStatus string

const (
	StatusPending    BookingStatus = "Pending"
	StatusInProgress BookingStatus = "In Progress"
	StatusCompleted  BookingStatus = "Completed"
)

// Statuses lists the allowed values in their nominal order. Moving backwards
// is not rejected.
var Statuses = []BookingStatus{StatusPending, StatusInProgress, StatusCompleted}

func (s BookingStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Booking struct {
	ID          string        `db:"id" json:"id"`
	UserID      string        `db:"user_id" json:"user_id"`
	ServiceID   string        `db:"service_id" json:"service_id"`
	WorkerID    *string       `db:"worker_id" json:"worker_id"`
	BookingDate string        `db:"booking_date" json:"booking_date"`
	BookingTime string        `db:"booking_time" json:"booking_time"`
	Address     string        `db:"address" json:"address"`
	Status      BookingStatus `db:"status" json:"status"`
}

// CustomerBooking is a booking as its requester sees it on /me.
type CustomerBooking struct {
	ID          string        `db:"id" json:"id"`
	BookingDate string        `db:"booking_date" json:"booking_date"`
	BookingTime string        `db:"booking_time" json:"booking_time"`
	Address     string        `db:"address" json:"address"`
	ServiceName string        `db:"service_name" json:"service_name"`
	Status      BookingStatus `db:"status" json:"status"`
	WorkerName  *string       `db:"worker_name" json:"worker_name"`
}

// WorkerBooking is a booking as the assigned worker sees it.
type WorkerBooking struct {
	ID           string        `db:"id" json:"id"`
	BookingDate  string        `db:"booking_date" json:"booking_date"`
	BookingTime  string        `db:"booking_time" json:"booking_time"`
	Address      string        `db:"address" json:"address"`
	Status       BookingStatus `db:"status" json:"status"`
	CustomerName string        `db:"customer_name" json:"customer_name"`
	ServiceName  string        `db:"service_name" json:"service_name"`
}

// AdminBooking is the denormalized row of the admin bookings board.
type AdminBooking struct {
	BookingID   string        `db:"booking_id" json:"booking_id"`
	BookingDate string        `db:"booking_date" json:"booking_date"`
	BookingTime string        `db:"booking_time" json:"booking_time"`
	Address     string        `db:"address" json:"address"`
	Status      BookingStatus `db:"status" json:"status"`
	WorkerName  *string       `db:"worker_name" json:"worker_name"`
	UserName    string        `db:"user_name" json:"user_name"`
	ServiceName string        `db:"service_name" json:"service_name"`
}
