// Package auth implements signup, login and bearer-token identification.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanessaike/social-feed-graphql-api/internal/apperr"
	"github.com/vanessaike/social-feed-graphql-api/internal/domain"
	"github.com/vanessaike/social-feed-graphql-api/internal/repository"
	"github.com/vanessaike/social-feed-graphql-api/pkg/crypto"
	jwtpkg "github.com/vanessaike/social-feed-graphql-api/pkg/jwt"
)

const minPasswordLength = 5

// Service handles authentication workflows.
type Service struct {
	users    repository.UserRepository
	logger   *slog.Logger
	secret   string
	tokenTTL time.Duration
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, secret string, tokenTTL time.Duration) Service {
	return Service{users: users, logger: logger, secret: secret, tokenTTL: tokenTTL}
}

// Signup registers a new user. Every violated validation rule is reported,
// not just the first.
func (s Service) Signup(ctx context.Context, firstName, email, password string) (*domain.User, error) {
	var fields []apperr.FieldError
	if !validEmail(email) {
		fields = append(fields, apperr.FieldError{Message: "Invalid email."})
	}
	if len(password) < minPasswordLength {
		fields = append(fields, apperr.FieldError{Message: "Password too short. Make sure it is at least 5 characters long."})
	}
	if err := apperr.Validation(fields); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, emailTakenError()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, emailTakenError()
		}
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a user and issues a signed token embedding the email
// and user id.
func (s Service) Login(ctx context.Context, email, password string) (token, userID string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", apperr.New("No user found.", http.StatusNotFound)
		}
		return "", "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return "", "", apperr.New("Password is incorrect.", http.StatusUnprocessableEntity)
	}
	token, err = jwtpkg.Sign(user.Email, user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return "", "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return token, user.ID, nil
}

// Identify verifies a bearer token and returns the identity it asserts.
func (s Service) Identify(token string) (Identity, error) {
	claims, err := jwtpkg.Parse(strings.TrimSpace(token), s.secret)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// Duplicate emails report 401, not 409. Clients depend on it; see DESIGN.md.
func emailTakenError() error {
	return apperr.New("Email already being used. Please, pick another one.", http.StatusUnauthorized)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
