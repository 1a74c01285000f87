// Package pagination maps a sequence and a 1-based page number onto a page
// slice plus page-count metadata. Listing queries and static path generation
// both page through it so they agree on page boundaries.
package pagination

import (
	"errors"
	"fmt"
)

var ErrInvalidPage = errors.New("page and page size must be at least 1")

// Page is one page of a sequence. The JSON shape matches what the listing
// templates consume.
type Page[T any] struct {
	Items       []T `json:"data"`
	TotalCount  int `json:"total_count"`
	Count       int `json:"count"`
	PageCount   int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.PageCount
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool {
	return p.CurrentPage > 1
}

// PageCount returns ceil(total/pageSize), or 0 for an empty sequence.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Bounds returns the half-open index range of page within a sequence of
// length total. Pages past the end yield an empty range at total.
func Bounds(total, page, pageSize int) (start, end int) {
	start = (page - 1) * pageSize
	if start > total {
		start = total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// Paginate returns the requested page of items. A page beyond the last one is
// empty rather than an error; callers decide whether that means not found.
func Paginate[T any](items []T, page, pageSize int) (Page[T], error) {
	if page < 1 || pageSize < 1 {
		return Page[T]{}, fmt.Errorf("page %d, size %d: %w", page, pageSize, ErrInvalidPage)
	}

	start, end := Bounds(len(items), page, pageSize)
	slice := make([]T, end-start)
	copy(slice, items[start:end])

	return Page[T]{
		Items:       slice,
		TotalCount:  len(items),
		Count:       len(slice),
		PageCount:   PageCount(len(items), pageSize),
		CurrentPage: page,
	}, nil
}
