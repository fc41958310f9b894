package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"workersdeck/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,name,email,password_hash,phone,role`

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`), email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT `+userCols+` FROM users WHERE id=?`), id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, r.DB.Rebind(`SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`), email)
	return n > 0, err
}

// Create inserts u. A concurrent insert of the same email surfaces as
// ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	const op = "repos.UserRepo.Create"

	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO users(id,name,email,password_hash,phone,role)
		VALUES(?,?,?,?,?,?)
	`), u.ID, u.Name, u.Email, u.Hash, u.Phone, u.Role)
	if err != nil {
		if isUnique(err) {
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	const op = "repos.UserRepo.UpdatePassword"

	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`), hash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.UserSummary, error) {
	out := []domain.UserSummary{}
	err := r.DB.SelectContext(ctx, &out, `SELECT id,name,email,role FROM users ORDER BY name`)
	return out, err
}

// Delete removes the user row only. Bookings that reference it are left in
// place.
func (r *UserRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM users WHERE id=?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
