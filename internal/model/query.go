package model

import (
	"net/url"
	"slices"

	"github.com/deppfellow/topicsvc/internal/errs"
	"github.com/deppfellow/topicsvc/internal/validation"
)

const (
	// SearchParam filters by case-insensitive name containment.
	SearchParam = "search"
	// SortParam selects the ordering; only SortByName has an effect.
	SortParam = "sort"

	// SortByName orders topics ascending by name.
	SortByName = "name"
)

var invalidSearchQueryCode = "INVALID_SEARCH_QUERY"

// ErrInvalidSearchQuery is returned when search is present but blank.
var ErrInvalidSearchQuery = errs.NewBadRequestError("Invalid search query", &invalidSearchQueryCode)

// ListTopicsQuery is the query string of GET /api/topics.
//
// Search is nil when the key is absent, and points to the (possibly empty)
// value when it is present.
type ListTopicsQuery struct {
	Search *string `query:"search" validate:"omitnil,notblank"`
	Sort   string  `query:"sort"`
}

// BindQuery fills the query from raw parameters. The first value wins when a
// key is repeated. A search pair that could not be decoded is an invalid
// search, not an absent one.
func (q *ListTopicsQuery) BindQuery(values url.Values, malformed []string) error {
	if slices.Contains(malformed, SearchParam) {
		return ErrInvalidSearchQuery
	}

	q.Search = nil
	if v, ok := values[SearchParam]; ok {
		search := ""
		if len(v) > 0 {
			search = v[0]
		}
		q.Search = &search
	}

	q.Sort = values.Get(SortParam)

	return nil
}

// Validate implements validation.Validatable.
func (q *ListTopicsQuery) Validate() error {
	if err := validation.Struct(q); err != nil {
		return ErrInvalidSearchQuery
	}
	return nil
}

// SearchTerm returns the search value, or "" if it was absent.
func (q *ListTopicsQuery) SearchTerm() string {
	if q.Search == nil {
		return ""
	}
	return *q.Search
}

// SortsByName reports whether the result must be ordered by name.
func (q *ListTopicsQuery) SortsByName() bool {
	return q.Sort == SortByName
}
