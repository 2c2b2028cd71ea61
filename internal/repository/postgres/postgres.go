package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vanessaike/social-feed-graphql-api/internal/domain"
	"github.com/vanessaike/social-feed-graphql-api/internal/repository"
)

const uniqueViolation = "23505"

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository = (*Repository)(nil)
	_ repository.PostRepository = (*Repository)(nil)
)

// CreateUser inserts a user. A concurrent insert racing past the service's
// duplicate pre-check surfaces as ErrDuplicateEmail via the unique index.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, first_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.FirstName, user.Email, user.PasswordHash, user.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, first_name, email, password_hash, created_at FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, first_name, email, password_hash, created_at FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreatePost inserts a post. The foreign key on creator_id guarantees the
// owning user exists for the lifetime of the post.
func (r *Repository) CreatePost(ctx context.Context, post *domain.Post) error {
	const query = `INSERT INTO posts (id, content, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, post.ID, post.Content, post.CreatorID, post.CreatedAt, post.UpdatedAt)
	return err
}

const postColumns = `p.id, p.content, p.creator_id, p.created_at, p.updated_at,
	u.id, u.first_name, u.email, u.password_hash, u.created_at`

// GetPostByID fetches a post with its creator joined.
func (r *Repository) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.creator_id
		WHERE p.id = $1`
	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListPosts returns all posts, most recently created first.
func (r *Repository) ListPosts(ctx context.Context) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.creator_id
		ORDER BY p.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListPostsByCreator returns one user's posts, most recently created first.
func (r *Repository) ListPostsByCreator(ctx context.Context, creatorID string) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.creator_id
		WHERE p.creator_id = $1
		ORDER BY p.created_at DESC`
	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

// UpdatePostContent rewrites a post's content and bumps its updated_at.
func (r *Repository) UpdatePostContent(ctx context.Context, id, content string) (*domain.Post, error) {
	const query = `UPDATE posts SET content = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, content, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetPostByID(ctx, id)
}

// DeletePost removes a post.
func (r *Repository) DeletePost(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectPosts(rows pgx.Rows) ([]domain.Post, error) {
	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	var u domain.User
	if err := row.Scan(&p.ID, &p.Content, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt,
		&u.ID, &u.FirstName, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	p.Creator = &u
	return &p, nil
}
