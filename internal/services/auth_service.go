package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"workersdeck/internal/apperr"
	"workersdeck/internal/auth"
	"workersdeck/internal/domain"
	"workersdeck/internal/repos"
	"workersdeck/internal/validate"
)

// ForgotPasswordMessage is returned whether or not the email is registered.
const ForgotPasswordMessage = "If an account with that email exists, a reset link has been sent."

// ResetMailer dispatches the reset link. Implementations must not block on
// delivery.
type ResetMailer interface {
	SendPasswordReset(name, email, token string)
}

type AuthService struct {
	Users    *repos.UserRepo
	Bookings *repos.BookingRepo
	Tokens   *auth.Tokens
	Mailer   ResetMailer
}

func NewAuthService(users *repos.UserRepo, bookings *repos.BookingRepo, tokens *auth.Tokens, mailer ResetMailer) *AuthService {
	return &AuthService{Users: users, Bookings: bookings, Tokens: tokens, Mailer: mailer}
}

type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"phone"`
	Role     string `json:"role" validate:"required,role"`
}

func (s *AuthService) Register(ctx context.Context, in Registration) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, apperr.BadRequest("All fields including role are required")
	}
	if err := validate.Struct(in); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	exists, err := s.Users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, apperr.Server("Registration failed", err)
	}
	if exists {
		return nil, apperr.Conflict("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Server("Registration failed", err)
	}
	u := &domain.User{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Email: in.Email,
		Hash:  hash,
		Phone: in.Phone,
		Role:  domain.Role(in.Role),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, repos.ErrDuplicate) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Server("Registration failed", err)
	}
	return u, nil
}

// Login returns a session token for the matching user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return "", nil, apperr.Server("Login failed", err)
	}
	if !auth.CheckPassword(u.Hash, password) {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}
	tok, err := s.Tokens.IssueSession(u.ID, u.Role)
	if err != nil {
		return "", nil, apperr.Server("Login failed", err)
	}
	return tok, u, nil
}

// ForgotPassword mails a reset link when email is registered. Callers get the
// same result either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return apperr.Server("Server error. Please try again later.", err)
	}
	tok, err := s.Tokens.IssueReset(u.ID)
	if err != nil {
		return apperr.Server("Server error. Please try again later.", err)
	}
	s.Mailer.SendPasswordReset(u.Name, u.Email, tok)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return apperr.BadRequest("Token and new password are required.")
	}
	claims, err := s.Tokens.ParseReset(token)
	if err != nil {
		return &apperr.Error{Kind: apperr.KindUnauthorized, Message: "Invalid or expired reset token.", Err: err}
	}
	if _, err := s.Users.ByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("User not found. Token may be invalid.")
		}
		return apperr.Server("Server error. Please try again.", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperr.Server("Server error. Please try again.", err)
	}
	if err := s.Users.UpdatePassword(ctx, claims.UserID, hash); err != nil {
		return apperr.Server("Server error. Please try again.", err)
	}
	return nil
}

// Me returns the caller's profile and the bookings they requested.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, []domain.CustomerBooking, error) {
	u, err := s.Users.ByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, nil, apperr.Server("Server error", err)
	}
	bookings, err := s.Bookings.ListForCustomer(ctx, userID)
	if err != nil {
		return nil, nil, apperr.Server("Server error", err)
	}
	return u, bookings, nil
}
