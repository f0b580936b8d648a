package listing

import (
	"net/http"

	"github.com/nekogravitycat/garage-storage-backend/internal/pkg/apperror"
)

var (
	ErrFetchFailed      = apperror.New(http.StatusBadGateway, "failed to fetch")
	ErrCreateFailed     = apperror.New(http.StatusBadGateway, "failed to create listing")
	ErrBookingFailed    = apperror.New(http.StatusBadGateway, "failed to book listing")
	ErrListingNotFound  = apperror.New(http.StatusNotFound, "listing not found")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "end date must not precede start date")
	ErrInvalidDraft     = apperror.New(http.StatusBadRequest, "invalid listing")
	ErrNoOwner          = apperror.New(http.StatusUnauthorized, "no signed-in user")
)

// Messages recorded in the store's error slot, one per operation.
const (
	msgFetchListings   = "Failed to fetch listings"
	msgFetchMyListings = "Failed to fetch your listings"
	msgFetchBookings   = "Failed to fetch bookings"
	msgCreateListing   = "Failed to create listing"
	msgBookListing     = "Failed to book listing"
)

// OpError is returned by every failing Store operation.
// It matches its Kind and its cause with errors.Is / errors.As.
type OpError struct {
	Op      string
	Message string
	Kind    *apperror.AppError
	Err     error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Message
	}
	return e.Op + ": " + e.Kind.Message + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
