package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"habitfs/internal/database/repository"
)

// Filter returns the entries matching query, best matches first. Exact,
// prefix and substring hits rank ahead of near-miss spellings, which are
// admitted within a small edit distance so typos still find their habit.
func Filter(entries []repository.Entry, query string) []repository.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	type scored struct {
		entry repository.Entry
		score int
	}
	var hits []scored
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		switch {
		case name == q:
			hits = append(hits, scored{e, 0})
		case strings.HasPrefix(name, q):
			hits = append(hits, scored{e, 1})
		case strings.Contains(name, q):
			hits = append(hits, scored{e, 2})
		default:
			d := levenshtein.ComputeDistance(q, name)
			if d <= maxDistance(q) {
				hits = append(hits, scored{e, 3 + d})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return strings.ToLower(hits[i].entry.Name) < strings.ToLower(hits[j].entry.Name)
	})

	out := make([]repository.Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

// maxDistance scales the allowed edit distance with query length so short
// queries stay strict. Length is counted in runes; edits are per rune.
func maxDistance(q string) int {
	d := utf8.RuneCountInString(q) / 3
	if d < 1 {
		d = 1
	}
	if d > 3 {
		d = 3
	}
	return d
}
