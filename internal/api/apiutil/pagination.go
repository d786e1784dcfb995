// internal/api/apiutil/pagination.go
package apiutil

import (
	"net/http"
	"strconv"
)

// PageParams are the caller-supplied pagination knobs, already validated:
// Page is at least 1 and PerPage is clamped to the configured maximum.
type PageParams struct {
	Page    int
	PerPage int
}

// PageParamsFromRequest reads `page` and `per_page` from the query string.
// Missing or unparseable values fall back to page 1 and the default size.
func PageParamsFromRequest(r *http.Request, defaultSize, maxSize int) PageParams {
	params := PageParams{Page: 1, PerPage: defaultSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if perPage, err := strconv.Atoi(raw); err == nil && perPage > 0 {
			params.PerPage = perPage
		}
	}
	if params.PerPage > maxSize {
		params.PerPage = maxSize
	}
	return params
}

// Offset is the row offset of the first item on the page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination is the response metadata for a paginated list. Prev and Next
// are absent when there is no such page.
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Prev    *int `json:"prev"`
	Next    *int `json:"next"`
}

// PageOf builds pagination metadata. hasNext comes from the caller having
// fetched one row beyond the page size.
func PageOf(params PageParams, hasNext bool) Pagination {
	page := Pagination{Page: params.Page, PerPage: params.PerPage}
	if params.Page > 1 {
		prev := params.Page - 1
		page.Prev = &prev
	}
	if hasNext {
		next := params.Page + 1
		page.Next = &next
	}
	return page
}

// Envelope is the wire shape of every paginated list response.
type Envelope struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
