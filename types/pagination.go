package types

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PageMetadata describes where a page sits inside the full result set.
// TotalPages is ceil(Total / PageSize); an empty result set has zero pages.
type PageMetadata struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPageMetadata computes page counts for a listing response.
func NewPageMetadata(page, pageSize int, total int64) PageMetadata {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return PageMetadata{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Links are the hypermedia navigation URLs of a paginated response.
// First and Previous are empty on the first page; Next and Last are empty
// on the last page and on an empty result set. Current is always set.
type Links struct {
	First    string `json:"first"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

// ListingParams is the request state a navigation link must carry so that
// following the link continues the same listing: page size, sort order and
// the folder filter round-trip through the URL unchanged.
type ListingParams struct {
	Page     int
	PageSize int
	SortBy   []string
	Folder   string
}

// Page is the envelope returned by every paginated listing.
type Page[T any] struct {
	Metadata PageMetadata `json:"metadata"`
	Links    Links        `json:"links"`
	Data     []T          `json:"data"`
}

// LinkBuilder renders absolute navigation URLs for one listing endpoint.
// The public base URL is injected at construction; the builder never
// consults the process environment.
type LinkBuilder struct {
	base *url.URL
}

// NewLinkBuilder creates a LinkBuilder for the listing endpoint at
// baseURL + path, e.g. NewLinkBuilder("https://photos.example.net", "/photos").
func NewLinkBuilder(baseURL, path string) (*LinkBuilder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	u.Path = path
	return &LinkBuilder{base: u}, nil
}

// Links builds the five navigation URLs for an already clamped current page.
func (b *LinkBuilder) Links(p ListingParams, currentPage, totalPages int64) Links {
	links := Links{Current: b.Link(currentPage, p)}
	if currentPage > 1 {
		links.First = b.Link(1, p)
		links.Previous = b.Link(currentPage-1, p)
	}
	if currentPage < totalPages {
		links.Next = b.Link(currentPage+1, p)
		links.Last = b.Link(totalPages, p)
	}
	return links
}

// Link renders the listing URL for a single page, preserving page size,
// sort order and folder from the original request. url.Values takes care
// of percent-encoding.
func (b *LinkBuilder) Link(page int64, p ListingParams) string {
	q := url.Values{}
	q.Set("page", strconv.FormatInt(page, 10))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	if len(p.SortBy) > 0 {
		q.Set("sort_by", strings.Join(p.SortBy, ","))
	}
	q.Set("folder", p.Folder)
	u := *b.base
	u.RawQuery = q.Encode()
	return u.String()
}

// NewPage assembles the response envelope from the rows and the
// pre-pagination total. The current page is clamped into [1, totalPages]
// before links are built, so a request past the end points back at the
// last real page. Pure function of its inputs.
func NewPage[T any](b *LinkBuilder, p ListingParams, items []T, total int64) Page[T] {
	meta := NewPageMetadata(p.Page, p.PageSize, total)

	current := int64(meta.Page)
	if current > meta.TotalPages {
		current = meta.TotalPages
	}
	if current < 1 {
		current = 1
	}
	meta.Page = int(current)

	return Page[T]{
		Metadata: meta,
		Links:    b.Links(p, current, meta.TotalPages),
		Data:     items,
	}
}
