package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/repositories"
)

var (
	// ErrNotFound is returned when the requested document does not exist
	ErrNotFound = repositories.ErrNotFound
	// ErrInvalidID is returned for identifiers that are not valid document ids
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidInput is returned for requests missing required data
	ErrInvalidInput = errors.New("invalid input")
)

// DocumentStore is the interface that wraps the operations of a single document collection.
type DocumentStore interface {
	// Method Find retrieves the documents matching "filter" in insertion order.
	//
	// "opts" parameter carries skip/limit pagination, a zero limit returns every match.
	Find(ctx context.Context, filter repositories.Filter, opts repositories.FindOptions) ([]models.Document, error)
	// Method FindOne retrieves the first document matching "filter".
	//
	// If nothing matches, ErrNotFound is returned together with "nil" value.
	FindOne(ctx context.Context, filter repositories.Filter) (models.Document, error)
	// Method InsertOne stores "doc" under a new identifier.
	InsertOne(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	// Method UpdateOne sets the fields of "set" on the first document matching "filter".
	UpdateOne(ctx context.Context, filter repositories.Filter, set models.Document) (*models.UpdateResult, error)
	// Method DeleteOne removes the first document matching "filter".
	DeleteOne(ctx context.Context, filter repositories.Filter) (*models.DeleteResult, error)
	// Method EstimatedCount returns the number of documents in the collection.
	EstimatedCount(ctx context.Context) (int64, error)
}

// validateID checks that id has the shape of a document identifier
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
