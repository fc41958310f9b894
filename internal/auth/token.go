package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"workersdeck/internal/domain"
)

const (
	audienceSession = "session"
	audienceReset   = "reset"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of both session and reset tokens. Reset tokens carry
// no role.
type Claims struct {
	UserID string      `json:"id"`
	Role   domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 tokens with a shared secret.
type Tokens struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration

	// Now is the clock used for issuing and expiry checks.
	Now func() time.Time
}

func NewTokens(secret string, sessionTTL, resetTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		Now:        time.Now,
	}
}

func (t *Tokens) IssueSession(userID string, role domain.Role) (string, error) {
	return t.issue(userID, role, audienceSession, t.sessionTTL)
}

func (t *Tokens) IssueReset(userID string) (string, error) {
	return t.issue(userID, "", audienceReset, t.resetTTL)
}

func (t *Tokens) ParseSession(raw string) (*Claims, error) {
	return t.parse(raw, audienceSession)
}

func (t *Tokens) ParseReset(raw string) (*Claims, error) {
	return t.parse(raw, audienceReset)
}

func (t *Tokens) issue(userID string, role domain.Role, aud string, ttl time.Duration) (string, error) {
	const op = "auth.issue"

	now := t.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{aud},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (t *Tokens) parse(raw, aud string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(aud),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
