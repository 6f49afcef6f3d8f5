package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAliases = map[string]string{
	"rating":       "t.rating",
	"date_created": "t.date_created",
	"file_name":    "t.file_name",
}

func TestParseSortByDirections(t *testing.T) {
	fields, err := ParseSortBy([]string{"-rating"}, testAliases)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "t.rating", fields[0].Column)
	assert.Equal(t, SortDesc, fields[0].Direction)

	fields, err = ParseSortBy([]string{"rating"}, testAliases)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, SortAsc, fields[0].Direction)
}

func TestParseSortByPreservesOrder(t *testing.T) {
	fields, err := ParseSortBy([]string{"-rating", "date_created", "file_name"}, testAliases)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "t.rating", fields[0].Column)
	assert.Equal(t, "t.date_created", fields[1].Column)
	assert.Equal(t, "t.file_name", fields[2].Column)
}

func TestParseSortByEmpty(t *testing.T) {
	fields, err := ParseSortBy(nil, testAliases)
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = ParseSortBy([]string{"", "  "}, testAliases)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestParseSortByUnknownField(t *testing.T) {
	_, err := ParseSortBy([]string{"file_hash"}, testAliases)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSortField)

	// The descending marker is stripped before lookup, so the error names
	// the bare field.
	_, err = ParseSortBy([]string{"-nope"}, testAliases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}
