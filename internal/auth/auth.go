// Package auth supplies the demo identity layer: a fixed user set,
// bcrypt-checked logins behind an artificial upstream delay, and signed
// session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown user and a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for a missing, malformed or expired
	// session token.
	ErrInvalidToken = errors.New("invalid session token")
)

// Role gates access to admin-only pages. The domain services are
// role-agnostic; only the presentation layer checks roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

type credential struct {
	user User
	hash []byte
}

// DemoUser is one entry of the fixed login set.
type DemoUser struct {
	Email    string
	Name     string
	Password string
	Role     Role
}

// DemoUsers is the practice's demo login set.
func DemoUsers() []DemoUser {
	return []DemoUser{
		{Email: "admin@kleinsmith.co.za", Name: "Dr A Kleinsmith", Password: "admin123", Role: RoleAdmin},
		{Email: "staff@kleinsmith.co.za", Name: "Reception", Password: "staff123", Role: RoleUser},
	}
}

type Service struct {
	secret []byte
	ttl    time.Duration
	delay  time.Duration
	users  map[string]credential
}

// NewService hashes the demo passwords and prepares the token signer.
// Plaintext passwords are not retained.
func NewService(secret string, ttl, delay time.Duration, users []DemoUser) (*Service, error) {
	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		delay:  delay,
		users:  make(map[string]credential, len(users)),
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", u.Email, err)
		}

		email := strings.ToLower(u.Email)
		s.users[email] = credential{
			user: User{ID: uuid.New(), Email: email, Name: u.Name, Role: u.Role},
			hash: hash,
		}
	}

	return s, nil
}

// Login checks the credentials and issues a session token. It first
// waits the configured delay, simulating the upstream identity provider;
// the wait respects context cancellation.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", User{}, ctx.Err()
		}
	}

	cred, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return "", User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(cred.user)
	if err != nil {
		return "", User{}, fmt.Errorf("issuing token: %w", err)
	}

	return token, cred.user, nil
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(u User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	return token.SignedString(s.secret)
}

// VerifyToken parses and validates a session token, returning the user
// it identifies.
func (s *Service) VerifyToken(tokenString string) (User, error) {
	var c claims

	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return User{}, ErrInvalidToken
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return User{}, ErrInvalidToken
	}

	return User{ID: id, Email: c.Email, Name: c.Name, Role: c.Role}, nil
}
