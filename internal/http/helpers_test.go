package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"workersdeck/internal/auth"
	"workersdeck/internal/config"
	"workersdeck/internal/http/handlers"
	"workersdeck/internal/repos"
)

type resetMail struct{ name, email, token string }

type recordingMailer struct {
	mu   sync.Mutex
	sent []resetMail
}

func (m *recordingMailer) SendPasswordReset(name, email, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, resetMail{name, email, token})
}

func (m *recordingMailer) all() []resetMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]resetMail(nil), m.sent...)
}

type testEnv struct {
	app    *fiber.App
	db     *sqlx.DB
	tokens *auth.Tokens
	mailer *recordingMailer
}

func testConfig() config.Config {
	return config.Config{
		DBDriver:       repos.DriverSQLite,
		DBDSN:          ":memory:",
		JWTSecret:      "test-secret",
		SessionTTL:     24 * time.Hour,
		ResetTTL:       time.Hour,
		FrontendOrigin: "http://localhost:3000",
		AuthRateLimit:  1000,
	}
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWith(t, testConfig())
}

func newEnvWith(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL)
	mailer := &recordingMailer{}
	deps := handlers.NewDeps(db, tokens, mailer)
	return &testEnv{app: handlers.NewApp(cfg, deps), db: db, tokens: tokens, mailer: mailer}
}

// call sends a JSON request and returns status and raw body.
func (e *testEnv) call(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func decode(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode %s: %v", string(b), err)
	}
}

func errorOf(t *testing.T, b []byte) string {
	t.Helper()
	var m map[string]any
	decode(t, b, &m)
	s, _ := m["error"].(string)
	return s
}

// signup registers and logs in, returning the session token and user id.
func (e *testEnv) signup(t *testing.T, name, email, role string) (string, string) {
	t.Helper()
	st, body := e.call(t, "POST", "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": "pw-" + name, "phone": "555-0100", "role": role,
	}, "")
	if st != fiber.StatusCreated {
		t.Fatalf("register %s: %d %s", email, st, body)
	}
	st, body = e.call(t, "POST", "/api/auth/login", map[string]string{"email": email, "password": "pw-" + name}, "")
	if st != fiber.StatusOK {
		t.Fatalf("login %s: %d %s", email, st, body)
	}
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, body, &out)
	if out.Token == "" || out.User.ID == "" || out.User.Role != role {
		t.Fatalf("bad login response: %s", body)
	}
	return out.Token, out.User.ID
}

func (e *testEnv) firstServiceID(t *testing.T) string {
	t.Helper()
	st, body := e.call(t, "GET", "/api/services", nil, "")
	if st != fiber.StatusOK {
		t.Fatalf("list services: %d", st)
	}
	var list []struct {
		ID string `json:"id"`
	}
	decode(t, body, &list)
	if len(list) == 0 {
		t.Fatal("seeded services missing")
	}
	return list[0].ID
}

func (e *testEnv) book(t *testing.T, token, serviceID string) string {
	t.Helper()
	st, body := e.call(t, "POST", "/api/book", map[string]string{
		"service_id": serviceID, "booking_date": "2025-08-15", "booking_time": "09:30", "address": "12 Elm St",
	}, token)
	if st != fiber.StatusOK {
		t.Fatalf("book: %d %s", st, body)
	}
	var out struct {
		BookingID string `json:"booking_id"`
	}
	decode(t, body, &out)
	return out.BookingID
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
