package apiutil

import (
	"net/http/httptest"
	"testing"
)

func TestPageParamsFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		page    int
		perPage int
	}{
		{"defaults", "/api/teams", 1, 30},
		{"explicit", "/api/teams?page=3&per_page=10", 3, 10},
		{"clamped to max", "/api/teams?per_page=500", 1, 100},
		{"garbage falls back", "/api/teams?page=x&per_page=-2", 1, 30},
		{"zero page falls back", "/api/teams?page=0", 1, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			params := PageParamsFromRequest(r, 30, 100)
			if params.Page != tt.page || params.PerPage != tt.perPage {
				t.Errorf("params = %+v, want page %d per_page %d", params, tt.page, tt.perPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (PageParams{Page: 1, PerPage: 30}).Offset(); got != 0 {
		t.Errorf("page 1 offset = %d, want 0", got)
	}
	if got := (PageParams{Page: 4, PerPage: 25}).Offset(); got != 75 {
		t.Errorf("page 4 offset = %d, want 75", got)
	}
}

func TestPageOf(t *testing.T) {
	page := PageOf(PageParams{Page: 1, PerPage: 30}, false)
	if page.Prev != nil || page.Next != nil {
		t.Errorf("single page should have no prev/next: %+v", page)
	}

	page = PageOf(PageParams{Page: 2, PerPage: 30}, true)
	if page.Prev == nil || *page.Prev != 1 {
		t.Errorf("prev = %v, want 1", page.Prev)
	}
	if page.Next == nil || *page.Next != 3 {
		t.Errorf("next = %v, want 3", page.Next)
	}
}
