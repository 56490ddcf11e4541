// Package auth handles password hashing and session tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
)

// Config holds the auth service dependencies.
type Config struct {
	// Secret signs session tokens (HMAC-SHA256).
	Secret string
	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration
	// Clock defaults to the real clock.
	Clock clock.Clock
}

// Validate checks required fields.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Secret", c.Secret, vb)
	if c.TokenTTL <= 0 {
		vb.Field("TokenTTL", "must be positive")
	}
	return vb.Build()
}

// Service issues and verifies bearer tokens and hashes passwords.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
	clock    clock.Clock
}

// NewService creates an auth service from config.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Service{
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
		clock:    c,
	}, nil
}

// HashPassword returns a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

// CheckPassword compares a password against its stored hash.
func (s *Service) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.Unauthenticated("invalid credentials")
	}
	return nil
}

// IssueToken mints a signed token for the given user.
func (s *Service) IssueToken(userID string) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// VerifyToken validates a token and returns the user id it was issued
// to. Expired, malformed, or wrongly signed tokens are all rejected as
// unauthenticated.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Unauthenticatedf("unexpected signing method %q", t.Method.Alg())
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !token.Valid {
		return "", errors.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.Unauthenticated("invalid token")
	}
	return claims.Subject, nil
}
