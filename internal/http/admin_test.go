package handlers_test

import (
	"net/http"
	"testing"
)

func TestAdminServiceCRUD(t *testing.T) {
	env := newEnv(t)
	adminTok, _ := env.signup(t, "Root", "root@example.com", "admin")

	if st, _ := env.call(t, "POST", "/api/bookings/admin/services", map[string]any{"description": "no name"}, adminTok); st != http.StatusBadRequest {
		t.Fatalf("missing name: want 400, got %d", st)
	}

	st, body := env.call(t, "POST", "/api/bookings/admin/services", map[string]any{
		"name": "Pest Control", "description": "Termites and more", "price": 899.5,
	}, adminTok)
	if st != http.StatusCreated {
		t.Fatalf("create: %d %s", st, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, body, &created)

	st, body = env.call(t, "GET", "/api/services/"+created.ID, nil, "")
	var got struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	decode(t, body, &got)
	if st != http.StatusOK || got.Name != "Pest Control" || got.Price != 899.5 {
		t.Fatalf("get: %d %s", st, body)
	}

	if st, _ := env.call(t, "PUT", "/api/bookings/admin/services/"+created.ID, map[string]any{"name": "Pest Control", "price": 950}, adminTok); st != http.StatusOK {
		t.Fatalf("update: want 200, got %d", st)
	}
	if st, _ := env.call(t, "PUT", "/api/bookings/admin/services/missing", map[string]any{"name": "x", "price": 1}, adminTok); st != http.StatusNotFound {
		t.Fatalf("update missing: want 404, got %d", st)
	}

	_, body = env.call(t, "GET", "/api/bookings/admin/services", nil, adminTok)
	var list []struct {
		ID string `json:"id"`
	}
	decode(t, body, &list)
	if len(list) != 5 {
		t.Fatalf("want 4 seeded + 1 created services, got %d", len(list))
	}

	if st, _ := env.call(t, "DELETE", "/api/bookings/admin/services/"+created.ID, nil, adminTok); st != http.StatusOK {
		t.Fatalf("delete: want 200, got %d", st)
	}
	if st, _ := env.call(t, "DELETE", "/api/bookings/admin/services/"+created.ID, nil, adminTok); st != http.StatusNotFound {
		t.Fatalf("delete twice: want 404, got %d", st)
	}
	if st, body := env.call(t, "GET", "/api/services/"+created.ID, nil, ""); st != http.StatusNotFound || errorOf(t, body) != "Service not found" {
		t.Fatalf("get deleted: want 404, got %d %s", st, body)
	}
}

func TestAdminUsers(t *testing.T) {
	env := newEnv(t)
	adminTok, _ := env.signup(t, "Root", "root@example.com", "admin")
	custTok, custID := env.signup(t, "Temp", "temp@example.com", "customer")
	bookingID := env.book(t, custTok, env.firstServiceID(t))

	_, body := env.call(t, "GET", "/api/bookings/admin/users", nil, adminTok)
	var users []map[string]any
	decode(t, body, &users)
	if len(users) != 2 {
		t.Fatalf("want 2 users, got %s", body)
	}
	for _, u := range users {
		if _, leaked := u["password_hash"]; leaked {
			t.Fatalf("hash leaked: %s", body)
		}
	}

	if st, _ := env.call(t, "DELETE", "/api/bookings/admin/users/"+custID, nil, adminTok); st != http.StatusOK {
		t.Fatalf("delete user: want 200, got %d", st)
	}
	if st, _ := env.call(t, "DELETE", "/api/bookings/admin/users/"+custID, nil, adminTok); st != http.StatusNotFound {
		t.Fatalf("delete again: want 404, got %d", st)
	}

	// the booking outlives its customer
	var n int
	if err := env.db.Get(&n, `SELECT COUNT(*) FROM bookings WHERE id = ?`, bookingID); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatal("booking removed with its user")
	}
}
