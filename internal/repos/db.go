package repos

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"workersdeck/internal/auth"
	"workersdeck/internal/domain"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// ErrDuplicate is returned when an insert trips a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// OpenDB connects with the named driver, creates the schema and seeds the demo
// catalog. Queries in this package use '?' placeholders and are rebound for
// the driver.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	const op = "repos.OpenDB"

	if driver == "" {
		driver = DriverSQLite
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		// every new sqlite connection gets its own in-memory database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("%s: schema: %w", op, err)
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, fmt.Errorf("%s: seed: %w", op, err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := schemaSQLite
	if db.DriverName() == DriverPostgres {
		schema = schemaPostgres
	}
	_, err := db.Exec(schema)
	return err
}

// Foreign keys are declared but not enforced on sqlite: deleting a user or a
// service that bookings still reference is allowed.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL CHECK (role IN ('customer','worker','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS services(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price > 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  service_id TEXT NOT NULL REFERENCES services(id),
  worker_id TEXT NULL REFERENCES users(id),
  booking_date TEXT NOT NULL,
  booking_time TEXT NOT NULL,
  address TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending','In Progress','Completed')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bookings_user   ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_bookings_worker ON bookings(worker_id);
`

// No REFERENCES on postgres so the orphaning behavior matches sqlite.
const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL CHECK (role IN ('customer','worker','admin')),
  created_at TIMESTAMPTZ DEFAULT now(),
  updated_at TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS services(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC(10,2) NOT NULL CHECK (price > 0),
  created_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  service_id TEXT NOT NULL,
  worker_id TEXT NULL,
  booking_date TEXT NOT NULL,
  booking_time TEXT NOT NULL,
  address TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending','In Progress','Completed')),
  created_at TIMESTAMPTZ DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_bookings_user   ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_bookings_worker ON bookings(worker_id);
`

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM services`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo services")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	catalog := []domain.Service{
		{Name: "Plumbing", Description: "Leak repair, fittings and drain cleaning", Price: 499},
		{Name: "Electrical", Description: "Wiring, switchboards and appliance installs", Price: 399},
		{Name: "Home Cleaning", Description: "Full home deep cleaning", Price: 1299},
		{Name: "Carpentry", Description: "Furniture repair and assembly", Price: 599},
	}
	for _, s := range catalog {
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO services(id,name,description,price) VALUES(?,?,?,?)`),
			uuid.NewString(), s.Name, s.Description, s.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// EnsureAdmin creates an admin account for email unless one with that email
// already exists. Safe to run on every startup.
func EnsureAdmin(db *sqlx.DB, name, email, password string) error {
	const op = "repos.EnsureAdmin"

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = db.Exec(db.Rebind(`
		INSERT INTO users(id,name,email,password_hash,phone,role)
		VALUES(?,?,?,?,'',?)
		ON CONFLICT DO NOTHING
	`), uuid.NewString(), name, email, hash, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// isUnique reports whether err is a unique-constraint violation from either
// driver.
func isUnique(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
