package listing

import (
	"math"
	"strconv"
	"strings"
)

// Default price bounds used when the user input is blank or not a number.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
)

// PriceRange is an inclusive monthly price window.
type PriceRange struct {
	Min float64
	Max float64
}

// DefaultPriceRange returns the window shown before the user edits the filters.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
}

// Contains reports whether price lies within the window.
// An inverted window (Min > Max) contains nothing.
func (r PriceRange) Contains(price float64) bool {
	return r.Min <= price && price <= r.Max
}

// ParsePriceRange builds a PriceRange from free-text bounds.
// A bound that does not parse to a finite number falls back to its default.
func ParsePriceRange(minText, maxText string) PriceRange {
	return PriceRange{
		Min: parseBound(minText, DefaultMinPrice),
		Max: parseBound(maxText, DefaultMaxPrice),
	}
}

func parseBound(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// SearchCriteria are the inputs of the search screen.
type SearchCriteria struct {
	Query string
	Price PriceRange
}

// Search derives the display list from listings.
// Only available listings are kept; a non-empty query must appear,
// ignoring case, in the title, the address or one of the amenities;
// the price must fall within the range. The source order is preserved.
func Search(listings []StorageListing, c SearchCriteria) []StorageListing {
	query := strings.ToLower(c.Query)
	out := make([]StorageListing, 0, len(listings))
	for _, l := range listings {
		if !l.Availability {
			continue
		}
		if query != "" && !matchesQuery(l, query) {
			continue
		}
		if !c.Price.Contains(l.Price) {
			continue
		}
		out = append(out, l.Clone())
	}
	return out
}

// matchesQuery expects query to be lower-cased already.
func matchesQuery(l StorageListing, query string) bool {
	if strings.Contains(strings.ToLower(l.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Location.Address), query) {
		return true
	}
	for _, a := range l.Amenities {
		if strings.Contains(strings.ToLower(a), query) {
			return true
		}
	}
	return false
}
