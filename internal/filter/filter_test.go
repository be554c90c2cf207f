package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-portal-api/internal/models"
)

func scholarships() []models.Scholarship {
	return []models.Scholarship{
		{ID: "1", Title: "Fulbright", Description: "US graduate study", Country: "USA", Tags: []string{"graduate", "research"}},
		{ID: "2", Title: "Erasmus", Description: "EU exchange", Country: "Europe", Tags: []string{"exchange"}},
		{ID: "3", Title: "Chevening", Description: "UK masters", Country: "UK", Tags: []string{"graduate"}},
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func scholarshipID(s models.Scholarship) string { return s.ID }

func TestScholarshipsFulbrightErasmus(t *testing.T) {
	items := []models.Scholarship{
		{ID: "1", Title: "Fulbright", Country: "United States", Tags: []string{"Fully Funded"}},
		{ID: "2", Title: "Erasmus", Country: "Germany", Tags: []string{"Partial Aid"}},
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "search by title", criteria: Criteria{Search: "fulbright"}, want: []string{"1"}},
		{name: "partial aid tag", criteria: Criteria{Tag: "Partial Aid"}, want: []string{"2"}},
		{name: "fully funded tag", criteria: Criteria{Tag: "Fully Funded"}, want: []string{"1"}},
		{name: "unknown country", criteria: Criteria{Country: "France"}, want: []string{}},
		{name: "exact country", criteria: Criteria{Country: "Germany"}, want: []string{"2"}},
		{name: "search and country", criteria: Criteria{Search: "FULBRIGHT", Country: "Germany"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scholarships(items, tt.criteria)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got, scholarshipID))
		})
	}
}

func TestAllIsNoop(t *testing.T) {
	items := scholarships()
	for _, value := range []string{"", "   ", "all", "ALL", " All "} {
		got := Scholarships(items, Criteria{Search: value, Country: value, Tag: value, Category: value})
		assert.Equal(t, items, got, "value %q", value)
	}

	articles := []models.Article{{ID: "a", Category: "visa"}, {ID: "b", Category: "tips"}}
	assert.Equal(t, articles, Articles(articles, Criteria{Category: "all"}))
}

func TestScholarshipsTagMembership(t *testing.T) {
	got := Scholarships(scholarships(), Criteria{Tag: "graduate"})
	assert.Equal(t, []string{"1", "3"}, ids(got, scholarshipID))

	assert.Empty(t, Scholarships(scholarships(), Criteria{Tag: "grad"}))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := scholarships()
	before := append([]models.Scholarship(nil), items...)
	_ = Scholarships(items, Criteria{Country: "UK"})
	assert.Equal(t, before, items)
}

func TestArticlesSearchFields(t *testing.T) {
	articles := []models.Article{
		{ID: "a", Title: "Visa guide", Summary: "paperwork", Category: "immigration", Content: "hidden keyword"},
		{ID: "b", Title: "Packing", Summary: "what to bring", Category: "tips"},
	}
	articleID := func(a models.Article) string { return a.ID }

	assert.Equal(t, []string{"a"}, ids(Articles(articles, Criteria{Search: "IMMIG"}), articleID))
	assert.Empty(t, Articles(articles, Criteria{Search: "keyword"}))
	assert.Equal(t, []string{"b"}, ids(Articles(articles, Criteria{Category: "tips"}), articleID))
	assert.Empty(t, Articles(articles, Criteria{Category: "Tips"}))
}

func TestUniversitiesSearchIncludesCountry(t *testing.T) {
	unis := []models.University{
		{ID: "u1", Name: "TU Munich", Country: "Germany"},
		{ID: "u2", Name: "MIT", Country: "USA"},
	}
	uniID := func(u models.University) string { return u.ID }

	assert.Equal(t, []string{"u1"}, ids(Universities(unis, Criteria{Search: "germ"}), uniID))
	assert.Equal(t, []string{"u2"}, ids(Universities(unis, Criteria{Country: "USA"}), uniID))
}

func TestNewsFeaturedAndCategory(t *testing.T) {
	items := []models.News{
		{ID: "n1", Category: "events", IsFeatured: true},
		{ID: "n2", Category: "events"},
		{ID: "n3", Category: "policy", IsFeatured: true},
	}
	newsID := func(n models.News) string { return n.ID }
	featured := true

	assert.Equal(t, []string{"n1", "n3"}, ids(News(items, Criteria{Featured: &featured}), newsID))
	assert.Equal(t, []string{"n1"}, ids(News(items, Criteria{Featured: &featured, Category: "events"}), newsID))
	assert.Len(t, News(items, Criteria{}), 3)
}

func TestCountriesSearch(t *testing.T) {
	countries := []models.Country{
		{ID: "c1", Name: "Canada", Description: "maple"},
		{ID: "c2", Name: "Japan", Description: "sakura"},
	}
	got := Countries(countries, Criteria{Search: "SAKU"})
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
}

func TestContainsAnyAndEquals(t *testing.T) {
	assert.True(t, ContainsAny("", "x"))
	assert.True(t, ContainsAny("B", "abc"))
	assert.False(t, ContainsAny("z", "abc", "def"))
	assert.True(t, Equals("all", "anything"))
	assert.False(t, Equals("usa", "USA"))
}
