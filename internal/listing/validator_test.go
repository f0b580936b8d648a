package listing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Title:       "Corner Garage",
		Description: "Dry and well lit.",
		Price:       95,
		Location: Location{
			Address:   "1 Elm Street",
			Latitude:  37.7,
			Longitude: -122.4,
		},
		Images:       []string{"https://example.com/garage.jpg"},
		Size:         "10x20 ft",
		Amenities:    []string{"Lighting"},
		Availability: true,
	}
}

func TestDraftValidator(t *testing.T) {
	v := NewDraftValidator()

	t.Run("Valid Draft", func(t *testing.T) {
		assert.NoError(t, v.Validate(validDraft()))
	})

	t.Run("Missing Fields Are Reported By Path", func(t *testing.T) {
		d := validDraft()
		d.Title = ""
		d.Location.Address = ""
		d.Images = nil

		err := v.Validate(d)
		require.Error(t, err)

		var fes FieldErrors
		require.True(t, errors.As(err, &fes))
		fields := make([]string, len(fes))
		for i, fe := range fes {
			fields[i] = fe.Field
		}
		assert.ElementsMatch(t, []string{"Title", "Location.Address", "Images"}, fields)
	})

	t.Run("Too Many Images", func(t *testing.T) {
		d := validDraft()
		d.Images = []string{"a", "b", "c", "d", "e", "f"}

		var fes FieldErrors
		require.True(t, errors.As(v.Validate(d), &fes))
		require.Len(t, fes, 1)
		assert.Equal(t, "Images", fes[0].Field)
		assert.Equal(t, "allows at most 5 item(s)", fes[0].Message)
	})

	t.Run("Blank Image Entry", func(t *testing.T) {
		d := validDraft()
		d.Images = []string{"ok", ""}

		var fes FieldErrors
		require.True(t, errors.As(v.Validate(d), &fes))
		assert.Equal(t, "Images[1]", fes[0].Field)
	})

	t.Run("Negative Price And Bad Coordinates", func(t *testing.T) {
		d := validDraft()
		d.Price = -1
		d.Location.Latitude = 91

		var fes FieldErrors
		require.True(t, errors.As(v.Validate(d), &fes))
		assert.Len(t, fes, 2)
		assert.Contains(t, fes.Error(), "Price: must be at least 0")
		assert.Contains(t, fes.Error(), "Location.Latitude: must be at most 90")
	})
}

func TestNormalizeAmenities(t *testing.T) {
	got := normalizeAmenities([]string{" Lighting ", "", "lighting", "Dry Space", "  "})
	assert.Equal(t, []string{"Lighting", "Dry Space"}, got)
	assert.NotNil(t, normalizeAmenities(nil))
}
