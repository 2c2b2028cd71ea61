package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vanessaike/social-feed-graphql-api/internal/apperr"
	"github.com/vanessaike/social-feed-graphql-api/internal/domain"
	"github.com/vanessaike/social-feed-graphql-api/internal/repository"
	"github.com/vanessaike/social-feed-graphql-api/pkg/crypto"
	jwtpkg "github.com/vanessaike/social-feed-graphql-api/pkg/jwt"
)

type userRepoStub struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	created []*domain.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (s *userRepoStub) CreateUser(_ context.Context, user *domain.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	s.created = append(s.created, user)
	return nil
}

func (s *userRepoStub) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *userRepoStub) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(repo *userRepoStub) Service {
	return New(repo, newLogger(), "test-secret", time.Hour)
}

func TestSignupReportsEveryViolatedRule(t *testing.T) {
	repo := newUserRepoStub()
	svc := newService(repo)

	_, err := svc.Signup(context.Background(), "Amy", "not-an-email", "abc")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if appErr.Status != 422 {
		t.Fatalf("unexpected status: %d", appErr.Status)
	}
	if len(appErr.Data) != 2 {
		t.Fatalf("expected both rules reported, got %+v", appErr.Data)
	}
	if len(repo.created) != 0 {
		t.Fatalf("no record should be created on validation failure")
	}
}

func TestSignupRejectsExistingEmail(t *testing.T) {
	repo := newUserRepoStub()
	svc := newService(repo)

	if _, err := svc.Signup(context.Background(), "Amy", "amy@x.com", "secret1"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.Signup(context.Background(), "Imposter", "amy@x.com", "secret2")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if appErr.Status != 401 {
		t.Fatalf("unexpected status: %d", appErr.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("duplicate signup must not create a record")
	}
}

func TestSignupHashesPassword(t *testing.T) {
	repo := newUserRepoStub()
	svc := newService(repo)

	user, err := svc.Signup(context.Background(), "Amy", "amy@x.com", "secret1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if string(user.PasswordHash) == "secret1" {
		t.Fatalf("password stored as plaintext")
	}
	if err := crypto.ComparePassword(user.PasswordHash, "secret1"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestLoginIssuesDecodableToken(t *testing.T) {
	repo := newUserRepoStub()
	svc := newService(repo)

	user, err := svc.Signup(context.Background(), "Amy", "amy@x.com", "secret1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	token, userID, err := svc.Login(context.Background(), "amy@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("unexpected user id: %q", userID)
	}
	claims, err := jwtpkg.Parse(token, "test-secret")
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.Email != "amy@x.com" || claims.UserID != user.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newService(newUserRepoStub())
	_, _, err := svc.Login(context.Background(), "ghost@x.com", "secret1")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Status != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newUserRepoStub()
	svc := newService(repo)
	if _, err := svc.Signup(context.Background(), "Amy", "amy@x.com", "secret1"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "amy@x.com", "wrong11")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Status != 422 {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestIdentifyRejectsExpiredToken(t *testing.T) {
	svc := newService(newUserRepoStub())
	token, err := jwtpkg.Sign("amy@x.com", "user-123", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Identify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestIdentifyReturnsClaims(t *testing.T) {
	svc := newService(newUserRepoStub())
	token, err := jwtpkg.Sign("amy@x.com", "user-123", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	ident, err := svc.Identify(token)
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}
	if ident.UserID != "user-123" || ident.Email != "amy@x.com" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}
