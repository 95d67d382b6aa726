// Package query models the browse request state: pagination, search,
// column sorting and the fixed filter set.
package query

import (
	"net/url"
	"strconv"
)

// PageSize is the number of places requested per page.
const PageSize = 10

// Filters is the fixed filter schema the catalog supports.
type Filters struct {
	Country       string
	Category      string
	Accommodation string
}

func (f Filters) Empty() bool {
	return f == Filters{}
}

// State is the full set of request parameters for a catalog page. The zero
// value is not usable; call New.
type State struct {
	Page    int
	Search  string
	SortKey string
	SortDir string
	Filters Filters
}

func New() State {
	return State{Page: 1, SortKey: "location", SortDir: "asc"}
}

// ToggleSort sorts by key ascending, or flips direction when the key is
// already the ascending sort column. Any sort change returns to page one.
func (s *State) ToggleSort(key string) {
	if s.SortKey == key && s.SortDir == "asc" {
		s.SortDir = "desc"
	} else {
		s.SortKey = key
		s.SortDir = "asc"
	}
	s.Page = 1
}

func (s *State) SetSearch(term string) {
	s.Search = term
	s.Page = 1
}

// SetFilter updates one filter field. Unknown names are ignored.
func (s *State) SetFilter(name, value string) {
	switch name {
	case "country":
		s.Filters.Country = value
	case "category":
		s.Filters.Category = value
	case "accommodation":
		s.Filters.Accommodation = value
	default:
		return
	}
	s.Page = 1
}

// ClearFilters resets the filter set but keeps search and sort.
func (s *State) ClearFilters() {
	s.Filters = Filters{}
	s.Page = 1
}

// SetPage clamps the target page into [1, totalPages]. A totalPages of zero
// still allows page one.
func (s *State) SetPage(page, totalPages int) {
	if page < 1 {
		page = 1
	}
	if totalPages >= 1 && page > totalPages {
		page = totalPages
	}
	s.Page = page
}

// Params renders the state as query parameters, omitting empty values.
func (s State) Params() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("limit", strconv.Itoa(PageSize))
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.SortKey != "" {
		v.Set("sortBy", s.SortKey)
		v.Set("sortOrder", s.SortDir)
	}
	if s.Filters.Country != "" {
		v.Set("country", s.Filters.Country)
	}
	if s.Filters.Category != "" {
		v.Set("category", s.Filters.Category)
	}
	if s.Filters.Accommodation != "" {
		v.Set("accommodation_available", s.Filters.Accommodation)
	}
	return v
}
