package listing

import "sync"

// SearchView keeps a filtered view of a Store up to date. The results are
// recomputed whenever the criteria change or the store reports a change.
type SearchView struct {
	store *Store

	mu       sync.Mutex
	criteria SearchCriteria
	results  []StorageListing
	cancel   func()
}

// NewSearchView starts with an empty query and the default price range.
func NewSearchView(store *Store) *SearchView {
	v := &SearchView{
		store:    store,
		criteria: SearchCriteria{Price: DefaultPriceRange()},
	}
	v.recompute()
	// The snapshot passed to subscribers may be overtaken by a concurrent
	// change, so the view always re-reads the store.
	v.cancel = store.Subscribe(func(State) { v.recompute() })
	return v
}

// Close stops following the store.
func (v *SearchView) Close() {
	v.cancel()
}

// SetQuery changes the free-text query.
func (v *SearchView) SetQuery(q string) {
	v.mu.Lock()
	v.criteria.Query = q
	v.mu.Unlock()
	v.recompute()
}

// SetPriceRange changes the price window.
func (v *SearchView) SetPriceRange(r PriceRange) {
	v.mu.Lock()
	v.criteria.Price = r
	v.mu.Unlock()
	v.recompute()
}

// Criteria returns the current criteria.
func (v *SearchView) Criteria() SearchCriteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// Results returns a copy of the current filtered listings.
func (v *SearchView) Results() []StorageListing {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneListings(v.results)
}

func (v *SearchView) recompute() {
	v.mu.Lock()
	c := v.criteria
	v.mu.Unlock()

	results := v.store.Search(c)

	v.mu.Lock()
	defer v.mu.Unlock()
	// Criteria may have moved on while the store was being read; the call
	// that changed them recomputes on its own.
	if v.criteria == c {
		v.results = results
	}
}
