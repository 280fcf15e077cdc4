package repository

import (
	"context"
	"fmt"

	"oneaccord/database"
	"oneaccord/models"
	"oneaccord/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostRepository implements the service.PostRepository interface
type PostRepository struct {
	q queryable
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) *PostRepository {
	return &PostRepository{q: db.Pool}
}

// newPostRepositoryWithTx creates a new post repository with a transaction
func newPostRepositoryWithTx(tx queryable) *PostRepository {
	return &PostRepository{q: tx}
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, body, post_type, image_url, seedbase_tag, mission_tag)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, likes, comments, created_at
	`

	err := r.q.QueryRow(ctx, query,
		post.AuthorID,
		post.Body,
		post.PostType,
		post.ImageURL,
		post.SeedbaseTag,
		post.MissionTag,
	).Scan(&post.ID, &post.Likes, &post.Comments, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by id
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `
		SELECT id, author_id, body, post_type, image_url, likes, comments,
		       seedbase_tag, mission_tag, created_at
		FROM posts
		WHERE id = $1
	`

	var post models.Post
	err := r.q.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Body,
		&post.PostType,
		&post.ImageURL,
		&post.Likes,
		&post.Comments,
		&post.SeedbaseTag,
		&post.MissionTag,
		&post.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}

	return &post, nil
}

// GetFeed returns posts newest first, limited, with author profiles
func (r *PostRepository) GetFeed(ctx context.Context, limit int) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.author_id, p.body, p.post_type, p.image_url, p.likes,
		       p.comments, p.seedbase_tag, p.mission_tag, p.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.active_role
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		var author models.UserProfile
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Body,
			&post.PostType,
			&post.ImageURL,
			&post.Likes,
			&post.Comments,
			&post.SeedbaseTag,
			&post.MissionTag,
			&post.CreatedAt,
			&author.ID,
			&author.Username,
			&author.DisplayName,
			&author.AvatarURL,
			&author.ActiveRole,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Author = &author
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// IncrementLikes bumps a post's like counter
func (r *PostRepository) IncrementLikes(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE posts SET likes = likes + 1 WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment likes for post %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", id, service.ErrNotFound)
	}

	return nil
}

// CreateComment inserts a comment and bumps the post's comment counter.
// Callers run this inside a unit of work so both writes commit together.
func (r *PostRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, likes, created_at
	`

	err := r.q.QueryRow(ctx, query,
		comment.PostID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.Likes, &comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	counterQuery := `UPDATE posts SET comments = comments + 1 WHERE id = $1`
	result, err := r.q.Exec(ctx, counterQuery, comment.PostID)
	if err != nil {
		return fmt.Errorf("failed to increment comment counter for post %s: %w", comment.PostID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", comment.PostID, service.ErrNotFound)
	}

	return nil
}

// GetComments returns a post's comments oldest first
func (r *PostRepository) GetComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.body, c.likes, c.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.active_role
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.q.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for post %s: %w", postID, err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var author models.UserProfile
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Body,
			&comment.Likes,
			&comment.CreatedAt,
			&author.ID,
			&author.Username,
			&author.DisplayName,
			&author.AvatarURL,
			&author.ActiveRole,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comment.Author = &author
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}
