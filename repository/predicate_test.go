package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePredicateSingleTerm(t *testing.T) {
	raw := json.RawMessage(`[{"field": "folder", "op": "eq", "value": "vacation"}]`)

	clause, args, err := CompilePredicate(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, "pa.folder = $1", clause)
	assert.Equal(t, []interface{}{"vacation"}, args)
}

func TestCompilePredicateMultipleTermsAreAnded(t *testing.T) {
	raw := json.RawMessage(`[
		{"field": "rating", "op": "gte", "value": 4},
		{"field": "ineligible_for_wallpaper", "op": "eq", "value": false}
	]`)

	clause, args, err := CompilePredicate(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, "pa.rating >= $1 AND pa.ineligible_for_wallpaper = $2", clause)
	assert.Equal(t, []interface{}{float64(4), false}, args)
}

func TestCompilePredicatePlaceholderOffset(t *testing.T) {
	raw := json.RawMessage(`[
		{"field": "folder", "op": "prefix", "value": "trips/"},
		{"field": "rating", "op": "gt", "value": 2}
	]`)

	clause, args, err := CompilePredicate(raw, 3)
	require.NoError(t, err)
	assert.Equal(t, "pa.folder LIKE $3 || '%' AND pa.rating > $4", clause)
	assert.Len(t, args, 2)
}

func TestCompilePredicatePrefixEscapesWildcards(t *testing.T) {
	raw := json.RawMessage(`[{"field": "folder", "op": "prefix", "value": "100%_cotton"}]`)

	_, args, err := CompilePredicate(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{`100\%\_cotton`}, args)
}

func TestCompilePredicateArrayMembership(t *testing.T) {
	raw := json.RawMessage(`[{"field": "tag", "op": "contains", "value": "sunset"}]`)

	clause, args, err := CompilePredicate(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, "$1 = ANY(pa.tags)", clause)
	assert.Equal(t, []interface{}{"sunset"}, args)

	raw = json.RawMessage(`[{"field": "entity", "op": "not_contains", "value": "Alice"}]`)
	clause, _, err = CompilePredicate(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, "NOT ($1 = ANY(pa.entities))", clause)
}

func TestCompilePredicateEmpty(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`[]`), json.RawMessage(`null`)} {
		clause, args, err := CompilePredicate(raw, 1)
		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Empty(t, args)
	}
}

func TestCompilePredicateRejectsUnknownField(t *testing.T) {
	raw := json.RawMessage(`[{"field": "file_hash", "op": "eq", "value": "x"}]`)
	_, _, err := CompilePredicate(raw, 1)
	assert.ErrorIs(t, err, ErrInvalidPredicate)
}

func TestCompilePredicateRejectsUnknownOperator(t *testing.T) {
	raw := json.RawMessage(`[{"field": "folder", "op": "regex", "value": ".*"}]`)
	_, _, err := CompilePredicate(raw, 1)
	assert.ErrorIs(t, err, ErrInvalidPredicate)
}

func TestCompilePredicateRejectsCompositeValues(t *testing.T) {
	raw := json.RawMessage(`[{"field": "folder", "op": "eq", "value": {"nested": true}}]`)
	_, _, err := CompilePredicate(raw, 1)
	assert.ErrorIs(t, err, ErrInvalidPredicate)
}

func TestCompilePredicateRejectsMalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"field": "folder"`)
	_, _, err := CompilePredicate(raw, 1)
	assert.ErrorIs(t, err, ErrInvalidPredicate)
}

func TestValidatePredicate(t *testing.T) {
	assert.NoError(t, ValidatePredicate(json.RawMessage(`[{"field": "rating", "op": "lte", "value": 3}]`)))
	assert.Error(t, ValidatePredicate(json.RawMessage(`[{"field": "rating", "op": "between", "value": 3}]`)))
}
