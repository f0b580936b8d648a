package http

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/garage-storage-backend/internal/listing"
	"github.com/nekogravitycat/garage-storage-backend/internal/pkg/response"
)

type Handler struct {
	store *listing.Store
	now   func() time.Time
}

func NewHandler(store *listing.Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

// List returns the listings currently held by the store.
func (h *Handler) List(c *gin.Context) {
	st := h.store.State()
	c.JSON(http.StatusOK, response.NewListResponse(NewListingResponses(st.Listings)))
}

// Refresh re-reads the listings from the backend.
func (h *Handler) Refresh(c *gin.Context) {
	if err := h.store.FetchListings(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	h.List(c)
}

// Search filters the listings by text and price.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	criteria := req.Criteria()
	items := NewListingResponses(h.store.Search(criteria))
	c.JSON(http.StatusOK, SearchResponse{
		Query:    criteria.Query,
		MinPrice: criteria.Price.Min,
		MaxPrice: criteria.Price.Max,
		Items:    items,
		Total:    len(items),
	})
}

// Amenities returns the amenity tags offered when creating a listing.
func (h *Handler) Amenities(c *gin.Context) {
	c.JSON(http.StatusOK, response.NewListResponse(slices.Clone(listing.PresetAmenities)))
}

func (h *Handler) Get(c *gin.Context) {
	l, ok := h.store.GetListingByID(c.Param("id"))
	if !ok {
		response.Error(c, listing.ErrListingNotFound)
		return
	}
	c.JSON(http.StatusOK, NewListingResponse(l))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	l, err := h.store.CreateListing(c.Request.Context(), req.ToDraft())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewListingResponse(l))
}

// MyListings re-reads and returns the signed-in user's listings.
func (h *Handler) MyListings(c *gin.Context) {
	if err := h.store.FetchMyListings(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	st := h.store.State()
	c.JSON(http.StatusOK, response.NewListResponse(NewListingResponses(st.MyListings)))
}

// MyBookings re-reads and returns the signed-in user's bookings.
func (h *Handler) MyBookings(c *gin.Context) {
	if err := h.store.FetchMyBookings(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	st := h.store.State()
	c.JSON(http.StatusOK, response.NewListResponse(NewBookingResponses(st.Bookings)))
}

func (h *Handler) Book(c *gin.Context) {
	var req BookListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	start, end, err := req.Dates(h.now())
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.store.BookListing(c.Request.Context(), req.ListingID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) State(c *gin.Context) {
	st := h.store.State()
	resp := StateResponse{
		IsLoading:      st.IsLoading,
		ListingCount:   len(st.Listings),
		MyListingCount: len(st.MyListings),
		BookingCount:   len(st.Bookings),
	}
	if st.Error != "" {
		resp.Error = &st.Error
	}
	if l, ok := h.store.SelectedListing(); ok {
		lr := NewListingResponse(l)
		resp.SelectedListing = &lr
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ClearError(c *gin.Context) {
	h.store.ClearError()
	c.Status(http.StatusNoContent)
}

// Select points the detail view at a listing, or clears the selection.
func (h *Handler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	if req.ListingID == nil || *req.ListingID == "" {
		h.store.SetSelectedListing("")
		c.Status(http.StatusNoContent)
		return
	}

	l, ok := h.store.GetListingByID(*req.ListingID)
	if !ok {
		response.Error(c, listing.ErrListingNotFound)
		return
	}
	h.store.SetSelectedListing(l.ID)
	c.JSON(http.StatusOK, NewListingResponse(l))
}
