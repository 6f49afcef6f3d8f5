package repository

import (
	"encoding/json"
	"errors"
	"fmt"
)

// A collection's saved query is a JSON array of predicate terms that are
// ANDed together, e.g.
//
//	[{"field": "folder", "op": "prefix", "value": "vacation"},
//	 {"field": "rating", "op": "gte", "value": 4}]
//
// Terms are compiled into parameterized SQL against a whitelist of fields
// and operators, so collections never store raw SQL.

// PredicateTerm is one comparison inside a collection's saved query.
type PredicateTerm struct {
	Field string          `json:"field"`
	Op    string          `json:"op"`
	Value json.RawMessage `json:"value"`
}

// ErrInvalidPredicate is wrapped by every predicate compilation failure so
// handlers can map it to a client error.
var ErrInvalidPredicate = errors.New("invalid collection predicate")

// predicateFields whitelists the filterable fields of the photo read model.
var predicateFields = map[string]string{
	"folder":                   "pa.folder",
	"file_name":                "pa.file_name",
	"rating":                   "pa.rating",
	"orientation":              "pa.orientation",
	"rotation":                 "pa.rotation",
	"original_width":           "pa.original_width",
	"original_height":          "pa.original_height",
	"ineligible_for_wallpaper": "pa.ineligible_for_wallpaper",
	"anonymous_entities":       "pa.anonymous_entities",
	"tag":                      "pa.tags",
	"entity":                   "pa.entities",
}

// predicateOps maps operator names to SQL comparison templates. %s is the
// column, $%d the parameter placeholder.
var predicateOps = map[string]string{
	"eq":           "%s = $%d",
	"ne":           "%s <> $%d",
	"lt":           "%s < $%d",
	"lte":          "%s <= $%d",
	"gt":           "%s > $%d",
	"gte":          "%s >= $%d",
	"prefix":       "%s LIKE $%d || '%%'",
	"contains":     "$%[2]d = ANY(%[1]s)",
	"not_contains": "NOT ($%[2]d = ANY(%[1]s))",
}

// CompilePredicate turns a stored predicate into a SQL fragment plus its
// arguments. Placeholder numbering starts at argIndex so the fragment can
// be embedded into a larger query. An empty or null predicate compiles to
// an empty fragment.
func CompilePredicate(raw json.RawMessage, argIndex int) (string, []interface{}, error) {
	if len(raw) == 0 {
		return "", nil, nil
	}

	var terms []PredicateTerm
	if err := json.Unmarshal(raw, &terms); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPredicate, err)
	}
	if len(terms) == 0 {
		return "", nil, nil
	}

	clause := ""
	var args []interface{}
	for i, term := range terms {
		column, ok := predicateFields[term.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown field %q", ErrInvalidPredicate, term.Field)
		}
		tmpl, ok := predicateOps[term.Op]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidPredicate, term.Op)
		}

		var value interface{}
		if err := json.Unmarshal(term.Value, &value); err != nil {
			return "", nil, fmt.Errorf("%w: bad value for %q: %v", ErrInvalidPredicate, term.Field, err)
		}
		switch v := value.(type) {
		case float64, bool:
		case string:
			// The prefix template appends the wildcard itself; % or _ in
			// the stored value must match literally.
			if term.Op == "prefix" {
				value = escapeLike(v)
			}
		default:
			return "", nil, fmt.Errorf("%w: value for %q must be a string, number or boolean", ErrInvalidPredicate, term.Field)
		}

		if i > 0 {
			clause += " AND "
		}
		clause += fmt.Sprintf(tmpl, column, argIndex+len(args))
		args = append(args, value)
	}

	return clause, args, nil
}

// ValidatePredicate checks a predicate without embedding it in a query.
// Used by the collection handlers before persisting.
func ValidatePredicate(raw json.RawMessage) error {
	_, _, err := CompilePredicate(raw, 1)
	return err
}
