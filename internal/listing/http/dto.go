package http

import (
	"fmt"
	"time"

	"github.com/nekogravitycat/garage-storage-backend/internal/listing"
)

type LocationDTO struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ListingResponse struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Price        float64     `json:"price"`
	Location     LocationDTO `json:"location"`
	Images       []string    `json:"images"`
	Size         string      `json:"size"`
	Amenities    []string    `json:"amenities"`
	OwnerID      string      `json:"owner_id"`
	OwnerName    string      `json:"owner_name"`
	Rating       float64     `json:"rating"`
	ReviewCount  int         `json:"review_count"`
	Availability bool        `json:"availability"`
	CreatedAt    time.Time   `json:"created_at"`
}

func NewListingResponse(l listing.StorageListing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location: LocationDTO{
			Address:   l.Location.Address,
			Latitude:  l.Location.Latitude,
			Longitude: l.Location.Longitude,
		},
		Images:       nonNil(l.Images),
		Size:         l.Size,
		Amenities:    nonNil(l.Amenities),
		OwnerID:      l.OwnerID,
		OwnerName:    l.OwnerName,
		Rating:       l.Rating,
		ReviewCount:  l.ReviewCount,
		Availability: l.Availability,
		CreatedAt:    l.CreatedAt,
	}
}

// ToListing converts a response back into the domain type.
func (r ListingResponse) ToListing() listing.StorageListing {
	return listing.StorageListing{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Location: listing.Location{
			Address:   r.Location.Address,
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
		},
		Images:       r.Images,
		Size:         r.Size,
		Amenities:    r.Amenities,
		OwnerID:      r.OwnerID,
		OwnerName:    r.OwnerName,
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
		Availability: r.Availability,
		CreatedAt:    r.CreatedAt,
	}
}

func NewListingResponses(ls []listing.StorageListing) []ListingResponse {
	items := make([]ListingResponse, len(ls))
	for i, l := range ls {
		items[i] = NewListingResponse(l)
	}
	return items
}

type BookingResponse struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listing_id"`
	UserID     string    `json:"user_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewBookingResponse(b listing.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		ListingID:  b.ListingID,
		UserID:     b.UserID,
		StartDate:  b.StartDate.Format(listing.DateLayout),
		EndDate:    b.EndDate.Format(listing.DateLayout),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}

// ToBooking converts a response back into the domain type.
func (r BookingResponse) ToBooking() (listing.Booking, error) {
	start, err := listing.ParseDate(r.StartDate)
	if err != nil {
		return listing.Booking{}, fmt.Errorf("invalid start_date %q: %w", r.StartDate, err)
	}
	end, err := listing.ParseDate(r.EndDate)
	if err != nil {
		return listing.Booking{}, fmt.Errorf("invalid end_date %q: %w", r.EndDate, err)
	}
	status := listing.BookingStatus(r.Status)
	if !status.Valid() {
		return listing.Booking{}, fmt.Errorf("invalid booking status %q", r.Status)
	}
	return listing.Booking{
		ID:         r.ID,
		ListingID:  r.ListingID,
		UserID:     r.UserID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: r.TotalPrice,
		Status:     status,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func NewBookingResponses(bs []listing.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bs))
	for i, b := range bs {
		items[i] = NewBookingResponse(b)
	}
	return items
}

// CreateListingRequest is the create-listing form. Field rules are checked
// by the store so HTTP and in-process callers get the same answer.
type CreateListingRequest struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Price        float64     `json:"price"`
	Location     LocationDTO `json:"location"`
	Images       []string    `json:"images"`
	Size         string      `json:"size"`
	Amenities    []string    `json:"amenities"`
	Availability *bool       `json:"availability"`
}

// ToDraft converts the request; availability defaults to true.
func (r CreateListingRequest) ToDraft() listing.Draft {
	available := true
	if r.Availability != nil {
		available = *r.Availability
	}
	return listing.Draft{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Location: listing.Location{
			Address:   r.Location.Address,
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
		},
		Images:       r.Images,
		Size:         r.Size,
		Amenities:    r.Amenities,
		Availability: available,
	}
}

// BookListingRequest books a listing. Without dates the booking runs from
// tomorrow for one month.
type BookListingRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// Dates resolves the requested range against now.
func (r BookListingRequest) Dates(now time.Time) (start, end time.Time, err error) {
	start, end = listing.DefaultBookingRange(now)
	if r.StartDate != "" {
		if start, err = listing.ParseDate(r.StartDate); err != nil {
			return
		}
	}
	if r.EndDate != "" {
		if end, err = listing.ParseDate(r.EndDate); err != nil {
			return
		}
	} else if r.StartDate != "" {
		end = start.AddDate(0, 1, 0)
	}
	return start, end, nil
}

// SearchRequest carries the search screen's inputs as typed text.
type SearchRequest struct {
	Query    string `form:"q"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

func (r SearchRequest) Criteria() listing.SearchCriteria {
	return listing.SearchCriteria{
		Query: r.Query,
		Price: listing.ParsePriceRange(r.MinPrice, r.MaxPrice),
	}
}

type SearchResponse struct {
	Query    string            `json:"query"`
	MinPrice float64           `json:"min_price"`
	MaxPrice float64           `json:"max_price"`
	Items    []ListingResponse `json:"items"`
	Total    int               `json:"total"`
}

// SelectRequest sets or, with a null listing_id, clears the selection.
type SelectRequest struct {
	ListingID *string `json:"listing_id"`
}

type StateResponse struct {
	IsLoading       bool             `json:"is_loading"`
	Error           *string          `json:"error"`
	SelectedListing *ListingResponse `json:"selected_listing"`
	ListingCount    int              `json:"listing_count"`
	MyListingCount  int              `json:"my_listing_count"`
	BookingCount    int              `json:"booking_count"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
