package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/flick/internal/domain"
)

// MapSearch converts a search response to a domain result set
func MapSearch(resp SearchResponse) domain.ResultSet {
	items := make([]domain.Summary, 0, len(resp.Search))
	for _, t := range resp.Search {
		items = append(items, MapSummary(t))
	}
	return domain.ResultSet{
		Items:        items,
		TotalResults: parseTotal(resp.TotalResults),
	}
}

// MapSummary converts a search hit to a domain summary
func MapSummary(t Title) domain.Summary {
	poster := t.Poster
	if poster == "" {
		poster = domain.NoPoster
	}
	return domain.Summary{
		Title:  t.Title,
		Year:   t.Year,
		ID:     t.IMDbID,
		Kind:   domain.Kind(strings.ToLower(t.Type)),
		Poster: poster,
	}
}

// MapDetail converts a detail response to a domain detail record
func MapDetail(resp DetailResponse) domain.Detail {
	return domain.Detail{
		Summary:  MapSummary(resp.Title),
		Runtime:  resp.Runtime,
		Genre:    resp.Genre,
		Director: resp.Director,
		Actors:   resp.Actors,
		Plot:     resp.Plot,
		Rating:   resp.IMDbRating,
	}
}

// parseTotal reads the provider's decimal total; anything unusable counts as 0
func parseTotal(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
