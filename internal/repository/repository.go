package repository

import (
	"context"

	"github.com/vanessaike/social-feed-graphql-api/internal/domain"
)

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// PostRepository persists posts. Read operations return posts with the
// creator record joined in.
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListPostsByCreator(ctx context.Context, creatorID string) ([]domain.Post, error)
	UpdatePostContent(ctx context.Context, id, content string) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error
}
