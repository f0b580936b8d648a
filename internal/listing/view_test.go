package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchView(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts With Default Criteria", func(t *testing.T) {
		s, _ := newTestStore(t)
		v := NewSearchView(s)
		defer v.Close()

		assert.Equal(t, SearchCriteria{Price: DefaultPriceRange()}, v.Criteria())
		assert.Equal(t, []string{"1", "2", "3"}, ids(v.Results()))
	})

	t.Run("Follows Criteria Changes", func(t *testing.T) {
		s, _ := newTestStore(t)
		v := NewSearchView(s)
		defer v.Close()

		v.SetPriceRange(PriceRange{Min: 50, Max: 150})
		assert.Equal(t, []string{"1", "2"}, ids(v.Results()))

		v.SetQuery("shelving")
		assert.Equal(t, []string{"2"}, ids(v.Results()))

		v.SetQuery("")
		v.SetPriceRange(PriceRange{Min: 300, Max: 100})
		assert.Empty(t, v.Results())
	})

	t.Run("Follows Store Changes", func(t *testing.T) {
		s := NewStore(NewSimulatedBackend(SimulatedConfig{}), signedIn(), nil)
		v := NewSearchView(s)
		defer v.Close()
		assert.Empty(t, v.Results())

		require.NoError(t, s.FetchListings(ctx))
		assert.Len(t, v.Results(), 3)

		d := validDraft()
		d.Title = "Basement Nook"
		_, err := s.CreateListing(ctx, d)
		require.NoError(t, err)

		v.SetQuery("nook")
		require.Len(t, v.Results(), 1)
		assert.Equal(t, "Basement Nook", v.Results()[0].Title)
	})

	t.Run("Stops After Close", func(t *testing.T) {
		s := NewStore(NewSimulatedBackend(SimulatedConfig{}), signedIn(), nil)
		v := NewSearchView(s)
		v.Close()

		require.NoError(t, s.FetchListings(ctx))
		assert.Empty(t, v.Results())
	})
}
