package models

import "encoding/json"

// Collection is a named, saved filter applied to the photo listing in
// place of ad-hoc query parameters. Query holds the structured predicate
// as raw JSON (a list of {field, op, value} terms ANDed together); the
// repository compiles it against a field whitelist, so no SQL is ever
// stored. Names are unique: creating an existing name returns the
// existing collection.
type Collection struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Query json.RawMessage `json:"query"`
}
