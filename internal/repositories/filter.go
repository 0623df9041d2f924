package repositories

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/talkbridge/backend/internal/models"
)

// fieldRegex restricts filterable and patchable fields to plain top-level keys
var fieldRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Operator is the comparison applied by a Condition
type Operator int

const (
	// OpEq matches documents whose field equals the value
	OpEq Operator = iota
	// OpContainsFold matches documents whose field contains the value, ignoring case
	OpContainsFold
)

// Condition is a single predicate over a top-level document field
type Condition struct {
	Field string
	Op    Operator
	Value string
}

// Filter is a conjunction of conditions; an empty filter matches every document
type Filter []Condition

// Eq builds an equality condition
func Eq(field, value string) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// ByID builds a condition matching the document with the given identifier
func ByID(id string) Condition {
	return Eq(models.IDField, id)
}

// ContainsFold builds a case-insensitive substring condition
func ContainsFold(field, substr string) Condition {
	return Condition{Field: field, Op: OpContainsFold, Value: substr}
}

// FindOptions holds skip/limit pagination; a zero Limit means no limit
type FindOptions struct {
	Skip  int64
	Limit int64
}

// whereClause renders the filter as a SQL WHERE clause with its arguments
func (f Filter) whereClause() (string, []any, error) {
	if len(f) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(f))
	args := make([]any, 0, len(f)*2)
	for _, cond := range f {
		if cond.Field == models.IDField {
			if cond.Op != OpEq {
				return "", nil, fmt.Errorf("%w: %s supports equality only", ErrInvalidField, models.IDField)
			}
			parts = append(parts, "id = ?")
			args = append(args, cond.Value)
			continue
		}

		if !fieldRegex.MatchString(cond.Field) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidField, cond.Field)
		}

		switch cond.Op {
		case OpEq:
			parts = append(parts, "JSON_UNQUOTE(JSON_EXTRACT(doc, ?)) = ?")
			args = append(args, jsonPath(cond.Field), cond.Value)
		case OpContainsFold:
			parts = append(parts, "LOWER(JSON_UNQUOTE(JSON_EXTRACT(doc, ?))) LIKE ?")
			args = append(args, jsonPath(cond.Field), "%"+escapeLike(strings.ToLower(cond.Value))+"%")
		default:
			return "", nil, fmt.Errorf("unsupported operator: %d", cond.Op)
		}
	}

	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func jsonPath(field string) string {
	return "$." + field
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
