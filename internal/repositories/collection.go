package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/talkbridge/backend/internal/models"
	"go.uber.org/zap"
)

// Collection names, each backed by a table of the same name
const (
	CollectionUsers         = "users"
	CollectionPosts         = "posts"
	CollectionAnnouncements = "announcements"
	CollectionPayments      = "payments"
	CollectionComments      = "comments"
)

var (
	// ErrNotFound is returned when no document matches a single-document lookup
	ErrNotFound = errors.New("document not found")
	// ErrInvalidField is returned for field names that cannot be addressed
	ErrInvalidField = errors.New("invalid field name")
	// ErrEmptyUpdate is returned when an update carries no fields
	ErrEmptyUpdate = errors.New("update has no fields")
)

// maxRowCount stands in for "no limit" when only an offset is requested
const maxRowCount = "18446744073709551615"

// collection stores JSON documents in a MySQL table with (seq, id, doc) columns.
// seq keeps insertion order, id is the public identifier, doc holds the JSON body.
type collection struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
	newID  func() string
}

// NewCollection creates a document collection over the table with the given name
func NewCollection(db *sql.DB, name string, logger *zap.Logger) *collection {
	return &collection{
		db:     db,
		table:  name,
		logger: logger.With(zap.String("collection", name)),
		newID:  uuid.NewString,
	}
}

// Name returns the collection name
func (c *collection) Name() string {
	return c.table
}

// Find returns the documents matching filter in insertion order, applying skip/limit
func (c *collection) Find(ctx context.Context, filter Filter, opts FindOptions) ([]models.Document, error) {
	where, args, err := filter.whereClause()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, doc FROM `%s`%s ORDER BY seq", c.table, where)
	switch {
	case opts.Limit > 0:
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Skip)
	case opts.Skip > 0:
		query += " LIMIT " + maxRowCount + " OFFSET ?"
		args = append(args, opts.Skip)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		c.logger.Error("failed to query documents", zap.Error(err))
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	documents := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			c.logger.Error("failed to scan document", zap.Error(err))
			return nil, err
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		c.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return documents, nil
}

// FindOne returns the first document matching filter or ErrNotFound
func (c *collection) FindOne(ctx context.Context, filter Filter) (models.Document, error) {
	where, args, err := filter.whereClause()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, doc FROM `%s`%s ORDER BY seq LIMIT 1", c.table, where)
	doc, err := scanDocument(c.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		c.logger.Error("failed to find document", zap.Error(err))
		return nil, err
	}

	return doc, nil
}

// InsertOne stores doc under a freshly generated identifier; a client supplied _id is ignored
func (c *collection) InsertOne(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	body := make(models.Document, len(doc))
	for key, value := range doc {
		if key != models.IDField {
			body[key] = value
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	id := c.newID()
	query := fmt.Sprintf("INSERT INTO `%s` (id, doc) VALUES (?, ?)", c.table)
	if _, err := c.db.ExecContext(ctx, query, id, payload); err != nil {
		c.logger.Error("failed to insert document", zap.Error(err))
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}

	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// UpdateOne sets the given top-level fields on the first document matching filter
func (c *collection) UpdateOne(ctx context.Context, filter Filter, set models.Document) (*models.UpdateResult, error) {
	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}

	where, args, err := filter.whereClause()
	if err != nil {
		return nil, err
	}

	// Sorted keys keep the generated statement stable
	keys := make([]string, 0, len(set))
	for key := range set {
		if key == models.IDField || !fieldRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys))
	setArgs := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		value, err := json.Marshal(set[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", key, err)
		}
		assignments = append(assignments, "?, CAST(? AS JSON)")
		setArgs = append(setArgs, jsonPath(key), string(value))
	}

	query := fmt.Sprintf("UPDATE `%s` SET doc = JSON_SET(doc, %s)%s LIMIT 1",
		c.table, strings.Join(assignments, ", "), where)

	res, err := c.db.ExecContext(ctx, query, append(setArgs, args...)...)
	if err != nil {
		c.logger.Error("failed to update document", zap.Error(err))
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	// With clientFoundRows the driver reports matched rows
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  affected,
		ModifiedCount: affected,
	}, nil
}

// DeleteOne removes the first document matching filter
func (c *collection) DeleteOne(ctx context.Context, filter Filter) (*models.DeleteResult, error) {
	where, args, err := filter.whereClause()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("DELETE FROM `%s`%s LIMIT 1", c.table, where)
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		c.logger.Error("failed to delete document", zap.Error(err))
		return nil, fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return &models.DeleteResult{Acknowledged: true, DeletedCount: affected}, nil
}

// EstimatedCount returns the number of documents in the collection
func (c *collection) EstimatedCount(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", c.table)
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		c.logger.Error("failed to count documents", zap.Error(err))
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// Ping checks that the backing database is reachable
func (c *collection) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (models.Document, error) {
	var (
		id      string
		payload []byte
	)
	if err := row.Scan(&id, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc := models.Document{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	doc[models.IDField] = id

	return doc, nil
}
