package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/repositories"
	"go.uber.org/zap"
)

// userExistsMessage is returned verbatim to clients re-registering a known email
const userExistsMessage = "User Already exists"

type userService struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewUserService creates a new user service over the users collection
func NewUserService(store DocumentStore, logger *zap.Logger) *userService {
	return &userService{
		store:  store,
		logger: logger,
	}
}

// List returns every user document
func (s *userService) List(ctx context.Context) ([]models.Document, error) {
	return s.store.Find(ctx, nil, repositories.FindOptions{})
}

// Create registers a user unless one with the same email exists.
//
// The existence check and the insert are two separate operations, so two concurrent sign-ups
// with the same email can both succeed. A client supplied role is dropped; roles change only through promotion.
func (s *userService) Create(ctx context.Context, user models.Document) (any, error) {
	email := user.String(models.UserFieldEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	_, err := s.store.FindOne(ctx, repositories.Filter{repositories.Eq(models.UserFieldEmail, email)})
	if err == nil {
		return &models.UserExistsResponse{Message: userExistsMessage, InsertedID: nil}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	doc := make(models.Document, len(user))
	for key, value := range user {
		if key != models.UserFieldRole {
			doc[key] = value
		}
	}

	result, err := s.store.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", email), zap.String("id", result.InsertedID))
	return result, nil
}

// UpdateProfile sets the provided profile fields of the user with "email" and grants the gold badge
func (s *userService) UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.UpdateResult, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	set := models.Document{models.UserFieldBadge: string(models.BadgeGold)}
	if req.Name != "" {
		set[models.UserFieldName] = req.Name
	}
	if req.Email != "" {
		set[models.UserFieldEmail] = req.Email
	}
	if req.Image != "" {
		set[models.UserFieldImage] = req.Image
	}

	return s.store.UpdateOne(ctx, repositories.Filter{repositories.Eq(models.UserFieldEmail, email)}, set)
}

// PromoteToAdmin grants the admin role to the user with "id"
func (s *userService) PromoteToAdmin(ctx context.Context, id string) (*models.UpdateResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	result, err := s.store.UpdateOne(ctx, repositories.Filter{repositories.ByID(id)}, models.Document{
		models.UserFieldRole: string(models.RoleAdmin),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user promoted to admin", zap.String("id", id), zap.Int64("matched", result.MatchedCount))
	return result, nil
}

// Delete removes the user with "id"
func (s *userService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteOne(ctx, repositories.Filter{repositories.ByID(id)})
}

// GetRole returns the stored role of the user with "email".
// A user without a role field is a member; an unknown email yields ErrNotFound.
func (s *userService) GetRole(ctx context.Context, email string) (models.Role, error) {
	user, err := s.store.FindOne(ctx, repositories.Filter{repositories.Eq(models.UserFieldEmail, email)})
	if err != nil {
		return "", err
	}

	role := models.Role(user.String(models.UserFieldRole))
	if role == "" {
		role = models.RoleMember
	}
	return role, nil
}

// IsAdmin reports whether the user with "email" holds the admin role; unknown users are not admins
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.GetRole(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return role == models.RoleAdmin, nil
}
