package scraper

import (
	"errors"

	"pricescout/models"
)

// ErrNoMatches is returned when a site pass accumulated nothing to report.
var ErrNoMatches = errors.New("no matches to aggregate")

// MatchSet accumulates accepted products for one site, keyed by display
// name. A later match with the same name replaces the earlier value but
// keeps the original position.
type MatchSet struct {
	entries map[string]models.ProductMatch
	order   []string
}

func NewMatchSet() *MatchSet {
	return &MatchSet{entries: make(map[string]models.ProductMatch)}
}

// Put records a match under its display name.
func (m *MatchSet) Put(match models.ProductMatch) {
	if _, seen := m.entries[match.Name]; !seen {
		m.order = append(m.order, match.Name)
	}
	m.entries[match.Name] = match
}

// Get returns the match stored under name.
func (m *MatchSet) Get(name string) (models.ProductMatch, bool) {
	match, ok := m.entries[name]
	return match, ok
}

// Len returns how many distinct products were matched.
func (m *MatchSet) Len() int {
	return len(m.entries)
}

// BuildRows flattens a match set into workbook rows, one per product, in
// first-insertion order. It fails with ErrNoMatches on an empty set and
// never mutates the set.
func BuildRows(matches *MatchSet) ([]models.ResultRow, error) {
	if matches == nil || matches.Len() == 0 {
		return nil, ErrNoMatches
	}

	rows := make([]models.ResultRow, 0, matches.Len())
	for _, name := range matches.order {
		match := matches.entries[name]
		rows = append(rows, models.ResultRow{
			Name:  match.Name,
			Price: match.PriceText,
			Link:  match.Link,
		})
	}
	return rows, nil
}
