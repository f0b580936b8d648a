package listing

import "time"

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FixtureListings returns the three listings the simulated backend starts with.
func FixtureListings() []StorageListing {
	return []StorageListing{
		{
			ID:          "1",
			Title:       "Spacious Single Car Garage",
			Description: "Clean and secure garage space perfect for storage. Easy access, well-lit, and dry.",
			Price:       150,
			Location: Location{
				Address:   "123 Oak Street, Downtown",
				Latitude:  37.7749,
				Longitude: -122.4194,
			},
			Images:       []string{"https://picsum.photos/400/300?random=1"},
			Size:         "Single car garage (12x24 ft)",
			Amenities:    []string{"24/7 Access", "Security Camera", "Electricity"},
			OwnerID:      "2",
			OwnerName:    "Sarah Johnson",
			Rating:       4.8,
			ReviewCount:  12,
			Availability: true,
			CreatedAt:    mustTime("2024-01-15T10:00:00Z"),
		},
		{
			ID:          "2",
			Title:       "Large Storage Space",
			Description: "Half of a two-car garage available for rent. Perfect for furniture or seasonal items.",
			Price:       120,
			Location: Location{
				Address:   "456 Pine Avenue, Suburbs",
				Latitude:  37.7849,
				Longitude: -122.4094,
			},
			Images:       []string{"https://picsum.photos/400/300?random=2"},
			Size:         "Half garage (12x12 ft)",
			Amenities:    []string{"Shelving Included", "Dry Space", "Easy Access"},
			OwnerID:      "3",
			OwnerName:    "Mike Chen",
			Rating:       4.6,
			ReviewCount:  8,
			Availability: true,
			CreatedAt:    mustTime("2024-01-20T14:30:00Z"),
		},
		{
			ID:          "3",
			Title:       "Climate Controlled Storage",
			Description: "Premium garage space with climate control. Perfect for sensitive items.",
			Price:       220,
			Location: Location{
				Address:   "789 Maple Drive, Uptown",
				Latitude:  37.7649,
				Longitude: -122.4294,
			},
			Images:       []string{"https://picsum.photos/400/300?random=3"},
			Size:         "Full garage (24x24 ft)",
			Amenities:    []string{"Climate Control", "24/7 Access", "Security System", "Electricity"},
			OwnerID:      "4",
			OwnerName:    "Emily Davis",
			Rating:       4.9,
			ReviewCount:  15,
			Availability: true,
			CreatedAt:    mustTime("2024-01-10T09:15:00Z"),
		},
	}
}

// FixtureBookings returns the bookings the simulated backend starts with.
// They belong to the user with id "1".
func FixtureBookings() []Booking {
	return []Booking{
		{
			ID:         "1",
			ListingID:  "1",
			UserID:     FixtureUserID,
			StartDate:  mustDate("2024-02-01"),
			EndDate:    mustDate("2024-03-01"),
			TotalPrice: 150,
			Status:     StatusConfirmed,
			CreatedAt:  mustTime("2024-01-25T10:00:00Z"),
		},
	}
}
