package handlers_test

import (
	"net/http"
	"testing"
)

func TestCancelByNonOwner(t *testing.T) {
	env := newEnv(t)
	ownerTok, _ := env.signup(t, "Owen", "owen@example.com", "customer")
	otherTok, _ := env.signup(t, "Olga", "olga@example.com", "customer")
	id := env.book(t, ownerTok, env.firstServiceID(t))

	st, body := env.call(t, "DELETE", "/api/bookings/"+id, nil, otherTok)
	if st != http.StatusForbidden || errorOf(t, body) != "Unauthorized or booking not found" {
		t.Fatalf("want 403, got %d %s", st, body)
	}
	var n int
	if err := env.db.Get(&n, `SELECT COUNT(*) FROM bookings WHERE id = ?`, id); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatal("booking removed by non-owner")
	}

	if st, _ := env.call(t, "DELETE", "/api/bookings/no-such-booking", nil, ownerTok); st != http.StatusForbidden {
		t.Fatalf("unknown booking: want 403, got %d", st)
	}
}

func TestBookingValidation(t *testing.T) {
	env := newEnv(t)
	tok, _ := env.signup(t, "Val", "val@example.com", "customer")
	svc := env.firstServiceID(t)

	cases := []map[string]string{
		{"booking_date": "2025-08-15", "booking_time": "09:30", "address": "x"},
		{"service_id": svc, "booking_date": "15/08/2025", "booking_time": "09:30", "address": "x"},
		{"service_id": svc, "booking_date": "2025-08-15", "booking_time": "half past", "address": "x"},
		{"service_id": svc, "booking_date": "2025-08-15", "booking_time": "09:30"},
	}
	for _, c := range cases {
		if st, body := env.call(t, "POST", "/api/book", c, tok); st != http.StatusBadRequest {
			t.Fatalf("%v: want 400, got %d %s", c, st, body)
		}
	}
}

func TestAssignAndUpdateStatus(t *testing.T) {
	env := newEnv(t)
	custTok, _ := env.signup(t, "Cid", "cid@example.com", "customer")
	w1Tok, w1 := env.signup(t, "Wanda", "wanda@example.com", "worker")
	w2Tok, _ := env.signup(t, "Walt", "walt@example.com", "worker")
	adminTok, _ := env.signup(t, "Amy", "amy@example.com", "admin")
	id := env.book(t, custTok, env.firstServiceID(t))

	if st, _ := env.call(t, "PUT", "/api/bookings/admin/assign-worker/"+id, map[string]string{}, adminTok); st != http.StatusBadRequest {
		t.Fatalf("missing worker_id: want 400, got %d", st)
	}
	st, body := env.call(t, "PUT", "/api/bookings/admin/assign-worker/"+id, map[string]string{"worker_id": w1}, adminTok)
	if st != http.StatusOK {
		t.Fatalf("assign: %d %s", st, body)
	}

	status := func() string {
		var s string
		if err := env.db.Get(&s, `SELECT status FROM bookings WHERE id = ?`, id); err != nil {
			t.Fatal(err)
		}
		return s
	}

	if st, body := env.call(t, "PUT", "/api/bookings/worker/update-status/"+id, map[string]string{"status": "Finished"}, w1Tok); st != http.StatusBadRequest || errorOf(t, body) != "Invalid status value" {
		t.Fatalf("invalid status: want 400, got %d %s", st, body)
	}

	// another worker gets a 200 but nothing changes
	entries := captureLogs(t, func() {
		if st, _ := env.call(t, "PUT", "/api/bookings/worker/update-status/"+id, map[string]string{"status": "Completed"}, w2Tok); st != http.StatusOK {
			t.Fatalf("mismatch: want 200, got %d", st)
		}
	})
	if _, ok := findAction(entries, "booking.status.noop"); !ok {
		t.Fatalf("expected booking.status.noop log, got %+v", entries)
	}
	if s := status(); s != "Pending" {
		t.Fatalf("status changed by unassigned worker: %s", s)
	}

	if st, _ := env.call(t, "PUT", "/api/bookings/worker/update-status/"+id, map[string]string{"status": "In Progress"}, w1Tok); st != http.StatusOK {
		t.Fatalf("assigned worker: want 200, got %d", st)
	}
	if s := status(); s != "In Progress" {
		t.Fatalf("want In Progress, got %s", s)
	}

	_, body = env.call(t, "GET", "/api/bookings/worker/my-bookings", nil, w1Tok)
	var jobs []struct {
		ID           string `json:"id"`
		CustomerName string `json:"customer_name"`
	}
	decode(t, body, &jobs)
	if len(jobs) != 1 || jobs[0].ID != id || jobs[0].CustomerName != "Cid" {
		t.Fatalf("worker listing: %s", body)
	}

	_, body = env.call(t, "GET", "/api/bookings/admin/bookings", nil, adminTok)
	var all []struct {
		BookingID  string  `json:"booking_id"`
		WorkerName *string `json:"worker_name"`
	}
	decode(t, body, &all)
	if len(all) != 1 || all[0].BookingID != id || all[0].WorkerName == nil || *all[0].WorkerName != "Wanda" {
		t.Fatalf("admin listing: %s", body)
	}
}
