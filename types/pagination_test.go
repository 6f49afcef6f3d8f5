package types

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLinkBuilder(t *testing.T) *LinkBuilder {
	t.Helper()
	b, err := NewLinkBuilder("https://photos.example.net", "/photos")
	require.NoError(t, err)
	return b
}

func pageParam(t *testing.T, link string) int {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	page, err := strconv.Atoi(u.Query().Get("page"))
	require.NoError(t, err)
	return page
}

func TestNewLinkBuilderRejectsRelativeBase(t *testing.T) {
	_, err := NewLinkBuilder("photos.example.net", "/photos")
	assert.Error(t, err)
}

func TestPageMetadataTotals(t *testing.T) {
	meta := NewPageMetadata(1, 20, 100)
	assert.Equal(t, int64(5), meta.TotalPages)

	meta = NewPageMetadata(1, 20, 101)
	assert.Equal(t, int64(6), meta.TotalPages)

	// total=0 must give zero pages, not one
	meta = NewPageMetadata(1, 20, 0)
	assert.Equal(t, int64(0), meta.TotalPages)
}

func TestLinksMiddlePage(t *testing.T) {
	b := testLinkBuilder(t)
	p := ListingParams{Page: 3, PageSize: 20}

	links := b.Links(p, 3, 10)
	assert.Equal(t, 1, pageParam(t, links.First))
	assert.Equal(t, 2, pageParam(t, links.Previous))
	assert.Equal(t, 3, pageParam(t, links.Current))
	assert.Equal(t, 4, pageParam(t, links.Next))
	assert.Equal(t, 10, pageParam(t, links.Last))
}

func TestLinksFirstPage(t *testing.T) {
	b := testLinkBuilder(t)
	links := b.Links(ListingParams{Page: 1, PageSize: 20}, 1, 10)
	assert.Empty(t, links.First)
	assert.Empty(t, links.Previous)
	assert.Equal(t, 1, pageParam(t, links.Current))
	assert.Equal(t, 2, pageParam(t, links.Next))
}

func TestLinksLastPage(t *testing.T) {
	b := testLinkBuilder(t)
	links := b.Links(ListingParams{Page: 10, PageSize: 20}, 10, 10)
	assert.Empty(t, links.Next)
	assert.Empty(t, links.Last)
	assert.Equal(t, 9, pageParam(t, links.Previous))
}

func TestLinksSinglePage(t *testing.T) {
	b := testLinkBuilder(t)
	links := b.Links(ListingParams{Page: 1, PageSize: 20}, 1, 1)
	assert.Empty(t, links.First)
	assert.Empty(t, links.Previous)
	assert.Empty(t, links.Next)
	assert.Empty(t, links.Last)
	assert.NotEmpty(t, links.Current)
}

func TestNewPageClampsCurrentPage(t *testing.T) {
	b := testLinkBuilder(t)

	// Request far past the end: current must be the clamped page, never
	// the raw requested one.
	page := NewPage(b, ListingParams{Page: 99, PageSize: 20}, []int{1, 2}, 42)
	assert.Equal(t, 3, page.Metadata.Page)
	assert.Equal(t, 3, pageParam(t, page.Links.Current))
	assert.Empty(t, page.Links.Next)
	assert.Empty(t, page.Links.Last)
}

func TestNewPageEmptyResultSet(t *testing.T) {
	b := testLinkBuilder(t)

	page := NewPage(b, ListingParams{Page: 1, PageSize: 20}, []int(nil), 0)
	assert.Equal(t, int64(0), page.Metadata.TotalPages)
	assert.Equal(t, 1, page.Metadata.Page)
	assert.Empty(t, page.Links.First)
	assert.Empty(t, page.Links.Previous)
	assert.Empty(t, page.Links.Next)
	assert.Empty(t, page.Links.Last)
	assert.Equal(t, 1, pageParam(t, page.Links.Current))
}

func TestLinkEncodesParams(t *testing.T) {
	b := testLinkBuilder(t)
	link := b.Link(2, ListingParams{
		PageSize: 50,
		SortBy:   []string{"-rating", "date_created"},
		Folder:   "summer trip/2019",
	})

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "50", q.Get("page_size"))
	assert.Equal(t, "-rating,date_created", q.Get("sort_by"))
	assert.Equal(t, "summer trip/2019", q.Get("folder"))
	// The raw query must not contain an unencoded space.
	assert.NotContains(t, u.RawQuery, " ")
}

func TestLinkOmitsSortWhenAbsentKeepsFolderAlways(t *testing.T) {
	b := testLinkBuilder(t)
	link := b.Link(1, ListingParams{PageSize: 20})

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	_, hasSort := q["sort_by"]
	assert.False(t, hasSort)
	_, hasFolder := q["folder"]
	assert.True(t, hasFolder)
	assert.Equal(t, "", q.Get("folder"))
}

// Building a link for page N and parsing it back must reproduce the
// original page size, sort and folder, so a client can follow links
// without losing its place.
func TestLinkRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := testLinkBuilder(t)

	original := ListingParams{
		Page:     2,
		PageSize: 50,
		SortBy:   []string{"-rating", "date_created"},
		Folder:   "summer trip/2019",
	}
	link := b.Link(4, original)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", link, nil)

	parsed, err := ParseGetPhotosRequest(c)
	require.NoError(t, err)
	assert.Equal(t, 4, parsed.Page)
	assert.Equal(t, original.PageSize, parsed.PageSize)
	assert.Equal(t, original.SortBy, parsed.SortBy)
	assert.Equal(t, original.Folder, parsed.Folder)
}
