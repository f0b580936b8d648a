package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/garage-storage-backend/internal/listing"
	listingHttp "github.com/nekogravitycat/garage-storage-backend/internal/listing/http"
	"github.com/nekogravitycat/garage-storage-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/garage-storage-backend/internal/pkg/response"
)

// TokenSource returns the bearer token for authenticated calls.
type TokenSource func() (string, error)

// Client is a listing.Backend that talks to another instance of this
// service over its /v1 JSON API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     *zap.Logger
}

var _ listing.Backend = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log.Named("remote") }
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListListings(ctx context.Context) ([]listing.StorageListing, error) {
	var body response.ListResponse[listingHttp.ListingResponse]
	if err := c.do(ctx, http.MethodGet, "/v1/listings", false, nil, &body); err != nil {
		return nil, err
	}
	return toListings(body.Items), nil
}

// ListMyListings returns the listings of the user the token belongs to;
// the remote side scopes by its own session, so ownerID is only logged.
func (c *Client) ListMyListings(ctx context.Context, ownerID string) ([]listing.StorageListing, error) {
	var body response.ListResponse[listingHttp.ListingResponse]
	if err := c.do(ctx, http.MethodGet, "/v1/me/listings", true, nil, &body); err != nil {
		return nil, err
	}
	c.log.Debug("own listings fetched", zap.String("owner_id", ownerID), zap.Int("count", len(body.Items)))
	return toListings(body.Items), nil
}

func (c *Client) ListBookings(ctx context.Context, userID string) ([]listing.Booking, error) {
	var body response.ListResponse[listingHttp.BookingResponse]
	if err := c.do(ctx, http.MethodGet, "/v1/me/bookings", true, nil, &body); err != nil {
		return nil, err
	}
	out := make([]listing.Booking, 0, len(body.Items))
	for _, item := range body.Items {
		b, err := item.ToBooking()
		if err != nil {
			return nil, fmt.Errorf("decode booking %s: %w", item.ID, err)
		}
		out = append(out, b)
	}
	c.log.Debug("bookings fetched", zap.String("user_id", userID), zap.Int("count", len(out)))
	return out, nil
}

// CreateListing submits l as a new listing. The remote side assigns its own
// identity and ownership; the returned record is what it stored.
func (c *Client) CreateListing(ctx context.Context, l listing.StorageListing) (listing.StorageListing, error) {
	available := l.Availability
	req := listingHttp.CreateListingRequest{
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location: listingHttp.LocationDTO{
			Address:   l.Location.Address,
			Latitude:  l.Location.Latitude,
			Longitude: l.Location.Longitude,
		},
		Images:       l.Images,
		Size:         l.Size,
		Amenities:    l.Amenities,
		Availability: &available,
	}

	var body listingHttp.ListingResponse
	if err := c.do(ctx, http.MethodPost, "/v1/listings", true, req, &body); err != nil {
		return listing.StorageListing{}, err
	}
	return body.ToListing(), nil
}

func (c *Client) CreateBooking(ctx context.Context, b listing.Booking) (listing.Booking, error) {
	req := listingHttp.BookListingRequest{
		ListingID: b.ListingID,
		StartDate: b.StartDate.Format(listing.DateLayout),
		EndDate:   b.EndDate.Format(listing.DateLayout),
	}

	var body listingHttp.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/v1/bookings", true, req, &body); err != nil {
		return listing.Booking{}, err
	}
	return body.ToBooking()
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var payload io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if c.token == nil {
			return fmt.Errorf("%s %s: no token source configured", method, path)
		}
		token, err := c.token()
		if err != nil {
			return fmt.Errorf("%s %s: get token: %w", method, path, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError turns an error response into an AppError with the remote status.
func decodeError(resp *http.Response) error {
	var body response.ErrorResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apperror.Wrap(fmt.Errorf("read error body: %w", err), resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
		if body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
	}

	msg := body.Error
	if body.Details != "" {
		msg += ": " + body.Details
	}
	return apperror.Wrap(errors.New(msg), resp.StatusCode, body.Error)
}

func toListings(items []listingHttp.ListingResponse) []listing.StorageListing {
	out := make([]listing.StorageListing, len(items))
	for i, item := range items {
		out[i] = item.ToListing()
	}
	return out
}
