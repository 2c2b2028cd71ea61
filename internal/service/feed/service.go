// Package feed implements the post timeline: listing, creation, edits and
// deletion with creator-only authorization.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vanessaike/social-feed-graphql-api/internal/apperr"
	"github.com/vanessaike/social-feed-graphql-api/internal/domain"
	"github.com/vanessaike/social-feed-graphql-api/internal/repository"
)

// Broadcaster fans a payload out to live feed subscribers.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// Service coordinates post persistence and live feed notifications.
type Service struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	stream Broadcaster
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a Service. stream may be nil when live updates are disabled.
func New(posts repository.PostRepository, users repository.UserRepository, stream Broadcaster, logger *slog.Logger) Service {
	return Service{posts: posts, users: users, stream: stream, logger: logger, now: time.Now}
}

// List returns all posts, most recently created first, with creators joined.
func (s Service) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListPosts(ctx)
}

// Get fetches a single post by id.
func (s Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New("No post found.", http.StatusNotFound)
		}
		return nil, err
	}
	return post, nil
}

// Create persists a new post owned by userID.
func (s Service) Create(ctx context.Context, userID, content string) (*domain.Post, error) {
	if err := validContent(content); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The token can outlive its user record.
			return nil, apperr.New("User not found", http.StatusNotFound)
		}
		return nil, err
	}
	now := s.now().UTC()
	post := &domain.Post{
		ID:        uuid.NewString(),
		Content:   content,
		CreatorID: user.ID,
		Creator:   user,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("post created", "post_id", post.ID, "user_id", user.ID)
	s.notify(eventPostCreated, post)
	return post, nil
}

// Update rewrites a post's content. Only the creator may edit.
func (s Service) Update(ctx context.Context, userID, id, content string) (*domain.Post, error) {
	if err := validContent(content); err != nil {
		return nil, err
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != userID {
		return nil, apperr.New("Cannot edit post.", http.StatusForbidden)
	}
	updated, err := s.posts.UpdatePostContent(ctx, id, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New("No post found.", http.StatusNotFound)
		}
		return nil, err
	}
	s.logger.Info("post updated", "post_id", id, "user_id", userID)
	return updated, nil
}

// Delete removes a post. Only the creator may delete.
func (s Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New("No user found.", http.StatusNotFound)
		}
		return err
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.CreatorID != userID {
		return apperr.New("Cannot delete post.", http.StatusForbidden)
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New("No post found.", http.StatusNotFound)
		}
		return err
	}
	s.logger.Info("post deleted", "post_id", id, "user_id", userID)
	s.notify(eventPostDeleted, post)
	return nil
}

func validContent(content string) error {
	if content == "" {
		return apperr.Validation([]apperr.FieldError{{Message: "Enter a valid post."}})
	}
	return nil
}
