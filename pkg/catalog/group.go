package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Group is the patterns of one category, in source order.
type Group struct {
	Category Category
	Patterns []Pattern
}

// Groups is a category-ordered list of non-empty groups.
type Groups []Group

// GroupByCategory groups patterns in category display order. Categories
// without patterns are absent. Patterns with an unknown category are
// dropped.
func GroupByCategory(patterns []Pattern) Groups {
	var groups Groups
	for _, c := range Categories() {
		var matched []Pattern
		for _, p := range patterns {
			if p.Category == c {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			groups = append(groups, Group{Category: c, Patterns: matched})
		}
	}
	return groups
}

// ByCategory returns the groups keyed by category.
func (g Groups) ByCategory() map[Category][]Pattern {
	m := make(map[Category][]Pattern, len(g))
	for _, group := range g {
		m[group.Category] = group.Patterns
	}
	return m
}

// Len returns the number of patterns across all groups.
func (g Groups) Len() int {
	n := 0
	for _, group := range g {
		n += len(group.Patterns)
	}
	return n
}

// Siblings returns the other patterns sharing p's category.
func Siblings(all []Pattern, p Pattern) []Pattern {
	var out []Pattern
	for _, other := range all {
		if other.Category == p.Category && other.ID != p.ID {
			out = append(out, other)
		}
	}
	return out
}

// Suggest returns the pattern whose id or name is closest to query, if
// it is close enough to be a plausible typo.
func Suggest(all []Pattern, query string) (Pattern, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Pattern{}, false
	}

	best, bestDist := -1, 0
	for i, p := range all {
		d := levenshtein.ComputeDistance(q, strings.ToLower(p.ID))
		if n := levenshtein.ComputeDistance(q, strings.ToLower(p.Name)); n < d {
			d = n
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Pattern{}, false
	}

	// Allow roughly one edit per three characters.
	limit := len(q) / 3
	if limit < 1 {
		limit = 1
	}
	if bestDist > limit {
		return Pattern{}, false
	}
	return all[best], true
}
