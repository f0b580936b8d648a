package listing

import "context"

// Backend is the remote side of the listings store.
// The store never mutates its collections before a Backend call succeeds.
type Backend interface {
	// ListListings returns every listing visible to the session.
	ListListings(ctx context.Context) ([]StorageListing, error)

	// ListMyListings returns the listings owned by ownerID.
	ListMyListings(ctx context.Context, ownerID string) ([]StorageListing, error)

	// ListBookings returns the bookings made by userID.
	ListBookings(ctx context.Context, userID string) ([]Booking, error)

	// CreateListing stores a fully populated listing and returns the stored record.
	CreateListing(ctx context.Context, l StorageListing) (StorageListing, error)

	// CreateBooking stores a booking and returns the stored record.
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
}
