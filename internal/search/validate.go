// Package search holds the search and pagination controller: query
// validation, the debounced fetch trigger and the bounded page window.
package search

import (
	"strings"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/validator"
)

// Warning messages shown under the search form
const (
	SearchRequiredWarning = "Search is required."
	YearFormatWarning     = "Please enter a valid 4-digit year or leave blank."
)

// Warnings are derived from a Query and never stored
type Warnings struct {
	Search string
	Year   string
}

// Validate derives the field warnings for q. Warnings gate fetches but
// never block edits.
func Validate(q domain.Query) Warnings {
	v := validator.New()

	search := strings.TrimSpace(q.Search)
	v.Check(search != "", "search", SearchRequiredWarning)

	if year := strings.TrimSpace(q.Year); year != "" {
		v.Check(validator.Matches(year, validator.YearRX), "year", YearFormatWarning)
	}

	return Warnings{
		Search: v.Get("search"),
		Year:   v.Get("year"),
	}
}

// CanFetch reports whether a query with these warnings may be sent
func (w Warnings) CanFetch() bool {
	return w.Search == "" && w.Year == ""
}
