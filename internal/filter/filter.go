// Package filter narrows content listings with conjunctive predicates.
//
// Every function is pure: it returns a new slice in input order and never
// modifies its argument. A criterion that is empty, whitespace only or the
// literal "all" (any case) does not constrain the result.
package filter

import (
	"strings"

	"github.com/noah-isme/edu-portal-api/internal/models"
)

// Criteria holds the optional predicates of a listing request.
type Criteria struct {
	Search   string
	Category string
	Country  string
	Tag      string
	Featured *bool
}

// Active normalizes a criterion value, reporting false when it matches everything.
func Active(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return "", false
	}
	return value, true
}

// ContainsAny reports whether needle is a case-insensitive substring of any field.
// An inactive needle matches.
func ContainsAny(needle string, fields ...string) bool {
	needle, ok := Active(needle)
	if !ok {
		return true
	}
	needle = strings.ToLower(needle)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Equals compares value against an exact criterion. An inactive criterion matches.
func Equals(criterion, value string) bool {
	criterion, ok := Active(criterion)
	if !ok {
		return true
	}
	return value == criterion
}

func apply[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Scholarships matches search over title and description, country equality and tag membership.
func Scholarships(items []models.Scholarship, c Criteria) []models.Scholarship {
	tag, hasTag := Active(c.Tag)
	return apply(items, func(s models.Scholarship) bool {
		return ContainsAny(c.Search, s.Title, s.Description) &&
			Equals(c.Country, s.Country) &&
			(!hasTag || s.HasTag(tag))
	})
}

// Articles matches search over title, summary and category plus category equality.
func Articles(items []models.Article, c Criteria) []models.Article {
	return apply(items, func(a models.Article) bool {
		return ContainsAny(c.Search, a.Title, a.Summary, a.Category) &&
			Equals(c.Category, a.Category)
	})
}

// Countries matches search over name and description.
func Countries(items []models.Country, c Criteria) []models.Country {
	return apply(items, func(country models.Country) bool {
		return ContainsAny(c.Search, country.Name, country.Description)
	})
}

// Universities matches search over name, description and country plus country equality.
func Universities(items []models.University, c Criteria) []models.University {
	return apply(items, func(u models.University) bool {
		return ContainsAny(c.Search, u.Name, u.Description, u.Country) &&
			Equals(c.Country, u.Country)
	})
}

// News matches search over title, summary and category, category equality and the featured flag.
func News(items []models.News, c Criteria) []models.News {
	return apply(items, func(n models.News) bool {
		return ContainsAny(c.Search, n.Title, n.Summary, n.Category) &&
			Equals(c.Category, n.Category) &&
			(c.Featured == nil || n.IsFeatured == *c.Featured)
	})
}

// Menu has no predicates; it returns a copy of items.
func Menu(items []models.Menu, _ Criteria) []models.Menu {
	return apply(items, func(models.Menu) bool { return true })
}
