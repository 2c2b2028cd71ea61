// Package graphql bridges the GraphQL operations to the auth and feed
// services. Each resolver checks the request identity before touching
// persistence; anonymous requests fail with status 401.
package graphql

import (
	"context"
	"net/http"
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/vanessaike/social-feed-graphql-api/internal/apperr"
	"github.com/vanessaike/social-feed-graphql-api/internal/domain"
	"github.com/vanessaike/social-feed-graphql-api/internal/repository"
	"github.com/vanessaike/social-feed-graphql-api/internal/service/auth"
	"github.com/vanessaike/social-feed-graphql-api/internal/service/feed"
)

// UserInput mirrors the UserInputData input type.
type UserInput struct {
	FirstName string
	Email     string
	Password  string
}

// Resolver is the root resolver for all queries and mutations.
type Resolver struct {
	auth  auth.Service
	feed  feed.Service
	posts repository.PostRepository
}

// NewResolver constructs the root resolver.
func NewResolver(authSvc auth.Service, feedSvc feed.Service, posts repository.PostRepository) *Resolver {
	return &Resolver{auth: authSvc, feed: feedSvc, posts: posts}
}

// Signup registers a new user account.
func (r *Resolver) Signup(ctx context.Context, args struct{ UserInput *UserInput }) (*userResolver, error) {
	if args.UserInput == nil {
		return nil, apperr.New("Invalid input.", http.StatusUnprocessableEntity)
	}
	user, err := r.auth.Signup(ctx, args.UserInput.FirstName, args.UserInput.Email, args.UserInput.Password)
	if err != nil {
		return nil, err
	}
	return &userResolver{user: *user, posts: r.posts}, nil
}

// Login exchanges credentials for a bearer token.
func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*authDataResolver, error) {
	token, userID, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, err
	}
	return &authDataResolver{token: token, userID: userID}, nil
}

// Posts returns the timeline, newest first.
func (r *Resolver) Posts(ctx context.Context) (*postDataResolver, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}
	posts, err := r.feed.List(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*postResolver, 0, len(posts))
	for _, post := range posts {
		resolvers = append(resolvers, &postResolver{post: post, posts: r.posts})
	}
	return &postDataResolver{posts: resolvers}, nil
}

// Post fetches a single post by id.
func (r *Resolver) Post(ctx context.Context, args struct{ ID graphqlgo.ID }) (*postResolver, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}
	post, err := r.feed.Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &postResolver{post: *post, posts: r.posts}, nil
}

// AddPost creates a post owned by the caller.
func (r *Resolver) AddPost(ctx context.Context, args struct{ Content string }) (*postResolver, error) {
	ident, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	post, err := r.feed.Create(ctx, ident.UserID, args.Content)
	if err != nil {
		return nil, err
	}
	return &postResolver{post: *post, posts: r.posts}, nil
}

// UpdatePost rewrites a post's content; creator only.
func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID      graphqlgo.ID
	Content string
}) (*postResolver, error) {
	ident, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	post, err := r.feed.Update(ctx, ident.UserID, string(args.ID), args.Content)
	if err != nil {
		return nil, err
	}
	return &postResolver{post: *post, posts: r.posts}, nil
}

// DeletePost removes a post; creator only.
func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphqlgo.ID }) (*bool, error) {
	ident, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.feed.Delete(ctx, ident.UserID, string(args.ID)); err != nil {
		return nil, err
	}
	ok := true
	return &ok, nil
}

func requireIdentity(ctx context.Context) (auth.Identity, error) {
	ident, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return auth.Identity{}, apperr.New("Not authenticated.", http.StatusUnauthorized)
	}
	return ident, nil
}

type authDataResolver struct {
	token  string
	userID string
}

func (r *authDataResolver) Token() string  { return r.token }
func (r *authDataResolver) UserID() string { return r.userID }

type postDataResolver struct {
	posts []*postResolver
}

func (r *postDataResolver) Posts() []*postResolver { return r.posts }

type postResolver struct {
	post  domain.Post
	posts repository.PostRepository
}

func (r *postResolver) ID() graphqlgo.ID { return graphqlgo.ID(r.post.ID) }
func (r *postResolver) Content() string  { return r.post.Content }

func (r *postResolver) Creator(ctx context.Context) (*userResolver, error) {
	if r.post.Creator != nil {
		return &userResolver{user: *r.post.Creator, posts: r.posts}, nil
	}
	return nil, apperr.New("No user found.", http.StatusNotFound)
}

func (r *postResolver) CreatedAt() string { return isoTime(r.post.CreatedAt) }
func (r *postResolver) UpdatedAt() string { return isoTime(r.post.UpdatedAt) }

type userResolver struct {
	user  domain.User
	posts repository.PostRepository
}

func (r *userResolver) ID() graphqlgo.ID  { return graphqlgo.ID(r.user.ID) }
func (r *userResolver) FirstName() string { return r.user.FirstName }
func (r *userResolver) Email() string     { return r.user.Email }

// Password exposes the bcrypt hash because the schema declares the field
// non-null. See DESIGN.md: inherited from the original API surface.
func (r *userResolver) Password() string { return string(r.user.PasswordHash) }

// Posts resolves the user's posts lazily, newest first.
func (r *userResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := r.posts.ListPostsByCreator(ctx, r.user.ID)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*postResolver, 0, len(posts))
	for _, post := range posts {
		resolvers = append(resolvers, &postResolver{post: post, posts: r.posts})
	}
	return resolvers, nil
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
