package service

import (
	"context"
	"fmt"

	"oneaccord/events"
	"oneaccord/models"

	"github.com/google/uuid"
)

type feedService struct {
	uowFactory UnitOfWorkFactory
}

// NewFeedService creates a new feed service
func NewFeedService(uowFactory UnitOfWorkFactory) FeedService {
	return &feedService{
		uowFactory: uowFactory,
	}
}

// CreatePost appends a post to the feed
func (s *feedService) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.Body == "" && post.ImageURL == "" {
		return nil, fmt.Errorf("post cannot be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	author, err := uow.UserRepository().GetByID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	if author == nil {
		return nil, fmt.Errorf("author %s: %w", post.AuthorID, ErrNotFound)
	}

	if post.PostType == "" {
		post.PostType = models.PostTypeStory
	}

	if err := uow.PostRepository().Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uow.EventBus().Publish(events.PostCreatedEvent{
		PostID:   post.ID,
		AuthorID: post.AuthorID,
		PostType: string(post.PostType),
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	profile := author.Profile()
	post.Author = &profile

	return post, nil
}

// GetFeed returns the feed, newest first
func (s *feedService) GetFeed(ctx context.Context, limit int) ([]*models.Post, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	posts, err := uow.PostRepository().GetFeed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	return posts, nil
}

// LikePost increments a post's like counter
func (s *feedService) LikePost(ctx context.Context, postID uuid.UUID) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.PostRepository().IncrementLikes(ctx, postID); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AddComment inserts the comment row and bumps the post's comment counter
// in one transaction
func (s *feedService) AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*models.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("comment cannot be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	post, err := uow.PostRepository().GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := uow.PostRepository().CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return comment, nil
}

// GetComments returns a post's comments oldest first
func (s *feedService) GetComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	comments, err := uow.PostRepository().GetComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}
