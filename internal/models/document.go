package models

// IDField is the key under which every stored document exposes its identifier
const IDField = "_id"

// Document is a schemaless JSON object kept in a collection
type Document map[string]any

// ID returns the document identifier, or an empty string if it has none
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// String returns the string value stored under key, or an empty string
func (d Document) String(key string) string {
	value, _ := d[key].(string)
	return value
}

// InsertResult is returned by single document inserts
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult is returned by single document updates
type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResult is returned by single document deletes
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// CountResponse carries a collection size for client-side page computation
type CountResponse struct {
	Count int64 `json:"count"`
}
