package listing

import (
	"slices"
	"time"
)

// DateLayout is the calendar-date format used for booking ranges.
const DateLayout = "2006-01-02"

// PresetAmenities are the amenity tags offered on the create-listing form.
var PresetAmenities = []string{
	"24/7 Access",
	"Security Camera",
	"Electricity",
	"Climate Control",
	"Shelving Included",
	"Dry Space",
	"Easy Access",
	"Security System",
	"Lighting",
	"Ground Level",
}

// Location is the street address and coordinates of a storage space.
type Location struct {
	Address   string  `validate:"required"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// StorageListing is a garage storage space offered for rent.
type StorageListing struct {
	ID           string
	Title        string
	Description  string
	Price        float64 // per month
	Location     Location
	Images       []string
	Size         string
	Amenities    []string
	OwnerID      string
	OwnerName    string
	Rating       float64
	ReviewCount  int
	Availability bool
	CreatedAt    time.Time
}

// Clone returns a copy that shares no slices with l.
func (l StorageListing) Clone() StorageListing {
	l.Images = slices.Clone(l.Images)
	l.Amenities = slices.Clone(l.Amenities)
	return l
}

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking is a request to rent a listing for a date range.
// TotalPrice is frozen at the listing price when the booking is made.
type Booking struct {
	ID         string
	ListingID  string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	Status     BookingStatus
	CreatedAt  time.Time
}

// Draft carries the fields a user supplies when creating a listing.
// Identity, ownership, rating and creation time are assigned by the Store.
type Draft struct {
	Title        string   `validate:"required"`
	Description  string   `validate:"required"`
	Price        float64  `validate:"gte=0"`
	Location     Location
	Images       []string `validate:"min=1,max=5,dive,required"`
	Size         string   `validate:"required"`
	Amenities    []string
	Availability bool
}

// Owner identifies the session user that owns created listings and bookings.
type Owner struct {
	ID   string
	Name string
}

// OwnerSource yields the owner of the current session, if anyone is signed in.
type OwnerSource interface {
	Owner() (Owner, bool)
}

// OwnerFunc adapts a plain function to OwnerSource.
type OwnerFunc func() (Owner, bool)

func (f OwnerFunc) Owner() (Owner, bool) { return f() }

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DefaultBookingRange returns the range offered by the detail view:
// from tomorrow until the same day one month later.
func DefaultBookingRange(now time.Time) (start, end time.Time) {
	y, m, d := now.UTC().Date()
	start = time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}
