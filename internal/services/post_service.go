package services

import (
	"context"

	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/repositories"
	"go.uber.org/zap"
)

type postService struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewPostService creates a new post service over the posts collection
func NewPostService(store DocumentStore, logger *zap.Logger) *postService {
	return &postService{
		store:  store,
		logger: logger,
	}
}

// List returns one page of posts whose tag contains "search", ignoring case.
//
// "page" is zero-based; "size" falls back to DefaultPageSize and is capped at MaxPageSize.
// An empty search matches every post.
func (s *postService) List(ctx context.Context, page, size int64, search string) ([]models.Document, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = models.DefaultPageSize
	}
	if size > models.MaxPageSize {
		size = models.MaxPageSize
	}

	var filter repositories.Filter
	if search != "" {
		filter = repositories.Filter{repositories.ContainsFold(models.PostFieldTag, search)}
	}

	return s.store.Find(ctx, filter, repositories.FindOptions{Skip: page * size, Limit: size})
}

// Count returns the total number of posts
func (s *postService) Count(ctx context.Context) (int64, error) {
	return s.store.EstimatedCount(ctx)
}

// Create stores a new post
func (s *postService) Create(ctx context.Context, post models.Document) (*models.InsertResult, error) {
	return s.store.InsertOne(ctx, post)
}

// ListByAuthor returns every post written by "authorEmail", or every post when it is empty
func (s *postService) ListByAuthor(ctx context.Context, authorEmail string) ([]models.Document, error) {
	var filter repositories.Filter
	if authorEmail != "" {
		filter = repositories.Filter{repositories.Eq(models.PostFieldAuthorEmail, authorEmail)}
	}
	return s.store.Find(ctx, filter, repositories.FindOptions{})
}

// DeleteOwn removes the post with "id" only if it was written by "authorEmail"
func (s *postService) DeleteOwn(ctx context.Context, id, authorEmail string) (*models.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteOne(ctx, repositories.Filter{
		repositories.ByID(id),
		repositories.Eq(models.PostFieldAuthorEmail, authorEmail),
	})
}

// Delete removes the post with "id" regardless of its author
func (s *postService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteOne(ctx, repositories.Filter{repositories.ByID(id)})
}
