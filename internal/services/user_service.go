package services

import (
	"context"

	"workersdeck/internal/apperr"
	"workersdeck/internal/domain"
	"workersdeck/internal/repos"
)

// UserService is the admin view over accounts.
type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	out, err := s.Users.List(ctx)
	if err != nil {
		return nil, apperr.Server("Server error", err)
	}
	return out, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	n, err := s.Users.Delete(ctx, id)
	if err != nil {
		return apperr.Server("Server error", err)
	}
	if n == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}
