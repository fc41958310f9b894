package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"workersdeck/internal/domain"
)

type ServiceRepo struct{ db *sqlx.DB }

func NewServiceRepo(db *sqlx.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	out := []domain.Service{}
	err := r.db.SelectContext(ctx, &out, `SELECT id,name,description,price FROM services ORDER BY name`)
	return out, err
}

func (r *ServiceRepo) Get(ctx context.Context, id string) (domain.Service, error) {
	var s domain.Service
	err := r.db.GetContext(ctx, &s, r.db.Rebind(`SELECT id,name,description,price FROM services WHERE id=?`), id)
	return s, err
}

func (r *ServiceRepo) Create(ctx context.Context, s domain.Service) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO services(id,name,description,price) VALUES(?,?,?,?)`),
		s.ID, s.Name, s.Description, s.Price)
	return err
}

func (r *ServiceRepo) Update(ctx context.Context, s domain.Service) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE services SET name=?, description=?, price=? WHERE id=?`),
		s.Name, s.Description, s.Price, s.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ServiceRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM services WHERE id=?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
