package types

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize is used when the client does not ask for a page size.
const DefaultPageSize = 20

// GetPhotosRequest carries the query state of one photo listing request.
// Page and PageSize are always >= 1 after parsing. An empty SortBy means
// the listing falls back to the stable shuffle order.
type GetPhotosRequest struct {
	Page         int
	PageSize     int
	SortBy       []string
	CollectionID *int
	Folder       string
}

// ParseGetPhotosRequest reads the listing parameters from the query string.
// Unparseable page numbers fall back to their defaults; a malformed
// collection_id is a validation error because it silently changes which
// result set the client sees.
func ParseGetPhotosRequest(c *gin.Context) (*GetPhotosRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))

	req := &GetPhotosRequest{
		Page:     page,
		PageSize: pageSize,
		SortBy:   SplitSortParam(c.Query("sort_by")),
		Folder:   c.Query("folder"),
	}
	req.Normalize()

	if raw := c.Query("collection_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.CollectionID = &id
	}

	return req, nil
}

// Normalize coerces page and page size into valid ranges.
func (r *GetPhotosRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
}

// Offset is the number of rows to skip for the requested page.
// Page 1 selects positions 1..PageSize.
func (r *GetPhotosRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Params returns the state the link builder must preserve across pages.
func (r *GetPhotosRequest) Params() ListingParams {
	return ListingParams{
		Page:     r.Page,
		PageSize: r.PageSize,
		SortBy:   r.SortBy,
		Folder:   r.Folder,
	}
}

// SplitSortParam splits a comma-separated sort_by value into tokens,
// dropping empty entries.
func SplitSortParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
