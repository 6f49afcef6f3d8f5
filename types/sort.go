package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sort directions emitted by ParseSortBy.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// ErrUnknownSortField is returned when a sort token names a field that is
// not present in the alias table. Handlers map it to a client error.
var ErrUnknownSortField = errors.New("unknown sort field")

// SortField is one resolved sort key: the backing column expression plus
// the direction requested by the client.
type SortField struct {
	Column    string
	Direction string
}

// ParseSortBy resolves client sort tokens into (column, direction) pairs.
// A leading '-' marks the field descending and is stripped before lookup.
// Token order is preserved: the first token is the highest-priority key.
// The alias table maps client-facing field names to column expressions so
// that making a field sortable is a data change, not a code change.
func ParseSortBy(tokens []string, aliases map[string]string) ([]SortField, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	fields := make([]SortField, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		direction := SortAsc
		name := token
		if strings.HasPrefix(token, "-") {
			direction = SortDesc
			name = token[1:]
		}

		column, ok := aliases[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, name)
		}
		fields = append(fields, SortField{Column: column, Direction: direction})
	}
	return fields, nil
}
