package services

import (
	"context"
	"fmt"

	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/repositories"
)

type commentService struct {
	store DocumentStore
}

// NewCommentService creates a new comment service over the comments collection
func NewCommentService(store DocumentStore) *commentService {
	return &commentService{store: store}
}

// ListByPost returns the comments of the post with "postID", or every comment when it is empty
func (s *commentService) ListByPost(ctx context.Context, postID string) ([]models.Document, error) {
	var filter repositories.Filter
	if postID != "" {
		filter = repositories.Filter{repositories.Eq(models.CommentFieldPostID, postID)}
	}
	return s.store.Find(ctx, filter, repositories.FindOptions{})
}

// Create stores a comment written by "commenterEmail"; the commenter field always reflects the caller
func (s *commentService) Create(ctx context.Context, comment models.Document, commenterEmail string) (*models.InsertResult, error) {
	if comment.String(models.CommentFieldPostID) == "" {
		return nil, fmt.Errorf("%w: postId is required", ErrInvalidInput)
	}

	doc := make(models.Document, len(comment)+1)
	for key, value := range comment {
		doc[key] = value
	}
	doc[models.CommentFieldCommenterEmail] = commenterEmail

	return s.store.InsertOne(ctx, doc)
}

// Delete removes the comment with "id"
func (s *commentService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteOne(ctx, repositories.Filter{repositories.ByID(id)})
}
