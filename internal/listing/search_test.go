package listing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(ls []StorageListing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestSearch(t *testing.T) {
	fixtures := FixtureListings()

	t.Run("Price Window", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Price: PriceRange{Min: 50, Max: 150}})
		assert.Equal(t, []string{"1", "2"}, ids(got))
	})

	t.Run("Bounds Are Inclusive", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Price: PriceRange{Min: 120, Max: 220}})
		assert.Equal(t, []string{"1", "2", "3"}, ids(got))
	})

	t.Run("Empty Query Keeps Every Available Listing In Order", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Price: DefaultPriceRange()})
		assert.Equal(t, []string{"1", "2", "3"}, ids(got))
	})

	t.Run("Query Matches Title Ignoring Case", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Query: "GARAGE", Price: DefaultPriceRange()})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("Query Matches Address", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Query: "pine avenue", Price: DefaultPriceRange()})
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("Query Matches Amenity", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Query: "electricity", Price: DefaultPriceRange()})
		assert.Equal(t, []string{"1", "3"}, ids(got))
	})

	t.Run("Query Does Not Match Description", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Query: "furniture", Price: DefaultPriceRange()})
		assert.Empty(t, got)
	})

	t.Run("Inverted Window Matches Nothing", func(t *testing.T) {
		got := Search(fixtures, SearchCriteria{Price: PriceRange{Min: 200, Max: 100}})
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("Unavailable Listings Are Hidden", func(t *testing.T) {
		ls := FixtureListings()
		ls[1].Availability = false
		got := Search(ls, SearchCriteria{Price: DefaultPriceRange()})
		assert.Equal(t, []string{"1", "3"}, ids(got))
	})

	t.Run("Every Result Satisfies The Criteria", func(t *testing.T) {
		c := SearchCriteria{Query: "access", Price: PriceRange{Min: 100, Max: 200}}
		for _, l := range Search(fixtures, c) {
			assert.True(t, l.Availability)
			assert.True(t, c.Price.Contains(l.Price))
			assert.True(t, matchesQuery(l, "access"))
		}
	})

	t.Run("Results Do Not Alias The Input", func(t *testing.T) {
		ls := FixtureListings()
		got := Search(ls, SearchCriteria{Price: DefaultPriceRange()})
		got[0].Amenities[0] = "changed"
		assert.Equal(t, "24/7 Access", ls[0].Amenities[0])
	})
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		want     PriceRange
	}{
		{"Both Blank", "", "", PriceRange{Min: 0, Max: 1000}},
		{"Both Numbers", "50", "150", PriceRange{Min: 50, Max: 150}},
		{"Decimals And Spaces", " 12.5 ", "99.99", PriceRange{Min: 12.5, Max: 99.99}},
		{"Non Numeric Falls Back", "abc", "xyz", PriceRange{Min: 0, Max: 1000}},
		{"One Bound Only", "", "300", PriceRange{Min: 0, Max: 300}},
		{"NaN And Inf Fall Back", "NaN", "Inf", PriceRange{Min: 0, Max: 1000}},
		{"Inverted Is Kept", "500", "100", PriceRange{Min: 500, Max: 100}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePriceRange(tc.min, tc.max)
			assert.Equal(t, tc.want, got)
			assert.False(t, math.IsNaN(got.Min) || math.IsNaN(got.Max))
		})
	}
}
