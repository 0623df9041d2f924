package services

import (
	"context"

	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/repositories"
)

type announcementService struct {
	store DocumentStore
}

// NewAnnouncementService creates a new announcement service over the announcements collection
func NewAnnouncementService(store DocumentStore) *announcementService {
	return &announcementService{store: store}
}

// List returns every announcement
func (s *announcementService) List(ctx context.Context) ([]models.Document, error) {
	return s.store.Find(ctx, nil, repositories.FindOptions{})
}

// Count returns the number of announcements
func (s *announcementService) Count(ctx context.Context) (int64, error) {
	return s.store.EstimatedCount(ctx)
}

// Get returns the announcement with "id"
func (s *announcementService) Get(ctx context.Context, id string) (models.Document, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.FindOne(ctx, repositories.Filter{repositories.ByID(id)})
}

// Create stores a new announcement
func (s *announcementService) Create(ctx context.Context, announcement models.Document) (*models.InsertResult, error) {
	return s.store.InsertOne(ctx, announcement)
}

// Update overwrites the title, description, author name and image of the announcement with "id"
func (s *announcementService) Update(ctx context.Context, id string, req *models.UpdateAnnouncementRequest) (*models.UpdateResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.UpdateOne(ctx, repositories.Filter{repositories.ByID(id)}, models.Document{
		models.AnnouncementFieldTitle:       req.Title,
		models.AnnouncementFieldDescription: req.Description,
		models.AnnouncementFieldAuthorName:  req.AuthorName,
		models.AnnouncementFieldImage:       req.Image,
	})
}

// Delete removes the announcement with "id"
func (s *announcementService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteOne(ctx, repositories.Filter{repositories.ByID(id)})
}
