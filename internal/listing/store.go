package listing

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nekogravitycat/garage-storage-backend/internal/pkg/apperror"
)

// State is a point-in-time copy of the store, safe to keep and read.
type State struct {
	Listings   []StorageListing
	MyListings []StorageListing
	Bookings   []Booking
	IsLoading  bool
	SelectedID string
	Error      string
}

type fetchKind int

const (
	fetchListings fetchKind = iota
	fetchMyListings
	fetchBookings
)

// Store owns the listings and bookings of one session and mediates every
// change to them. No lock is held while the backend is called.
type Store struct {
	backend   Backend
	owner     OwnerSource
	validator *DraftValidator
	log       *zap.Logger
	now       func() time.Time
	newID     func() string

	mu         sync.Mutex
	listings   []StorageListing
	myListings []StorageListing
	bookings   []Booking
	inFlight   int
	selectedID string
	errMsg     string

	// Monotonic fetch sequence numbers: a result is applied only when no
	// later-issued fetch of the same kind has been applied before it.
	issued  [3]uint64
	applied [3]uint64

	subs    map[int]func(State)
	nextSub int
	version uint64

	// notifyMu orders deliveries; delivered is the newest version handed out.
	notifyMu  sync.Mutex
	delivered uint64
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator used for new listings and bookings.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates an empty store on top of backend.
// owner supplies the signed-in user for created listings and bookings.
func NewStore(backend Backend, owner OwnerSource, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		backend:   backend,
		owner:     owner,
		validator: NewDraftValidator(),
		log:       log.Named("listings"),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
		subs:      make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close drops every subscriber. The store stays readable afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.subs)
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive the state after every change.
// fn runs on the goroutine that made the change, without the store lock held.
// Deliveries are serialised and never go back in time: a snapshot overtaken by
// a newer one is dropped, so the last state fn received matches State() once
// the store is quiet. fn may read the store but must not change it.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) snapshotLocked() State {
	return State{
		Listings:   cloneListings(s.listings),
		MyListings: cloneListings(s.myListings),
		Bookings:   slices.Clone(s.bookings),
		IsLoading:  s.inFlight > 0,
		SelectedID: s.selectedID,
		Error:      s.errMsg,
	}
}

// update applies fn under the lock and then notifies subscribers.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	s.version++
	if len(s.subs) == 0 {
		s.mu.Unlock()
		return
	}
	version := s.version
	snap := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if version <= s.delivered {
		return
	}
	s.delivered = version
	for _, sub := range subs {
		sub(snap)
	}
}

// begin marks an operation in flight and clears the previous error.
func (s *Store) begin() {
	s.update(func() {
		s.inFlight++
		s.errMsg = ""
	})
}

// beginFetch is begin for reads; it returns the fetch's sequence number.
func (s *Store) beginFetch(kind fetchKind) uint64 {
	var seq uint64
	s.update(func() {
		s.inFlight++
		s.errMsg = ""
		s.issued[kind]++
		seq = s.issued[kind]
	})
	return seq
}

// fail records message in the error slot, ends the operation and returns the error.
func (s *Store) fail(op, message string, kind *apperror.AppError, cause error) error {
	err := newOpError(op, message, kind, cause)
	s.update(func() {
		s.inFlight--
		s.errMsg = message
	})
	s.log.Warn("operation failed", zap.String("op", op), zap.Error(err))
	return err
}

func (s *Store) failFetch(kind fetchKind, seq uint64, op, message string, cause error) error {
	err := newOpError(op, message, ErrFetchFailed, cause)
	s.update(func() {
		s.inFlight--
		// A newer fetch already delivered fresher data; keep its state clean.
		if seq > s.applied[kind] {
			s.errMsg = message
		}
	})
	s.log.Warn("operation failed", zap.String("op", op), zap.Error(err))
	return err
}

func newOpError(op, message string, kind *apperror.AppError, cause error) *OpError {
	return &OpError{Op: op, Message: message, Kind: kind, Err: cause}
}

// FetchListings replaces the listings with the backend's current list.
// On failure the previous listings are kept.
func (s *Store) FetchListings(ctx context.Context) error {
	const op = "fetch_listings"
	seq := s.beginFetch(fetchListings)

	items, err := s.backend.ListListings(ctx)
	if err != nil {
		return s.failFetch(fetchListings, seq, op, msgFetchListings, err)
	}

	s.update(func() {
		s.inFlight--
		if seq > s.applied[fetchListings] {
			s.applied[fetchListings] = seq
			s.listings = cloneListings(items)
		}
	})
	s.log.Debug("listings fetched", zap.Int("count", len(items)), zap.Uint64("seq", seq))
	return nil
}

// FetchMyListings replaces the signed-in user's listings.
func (s *Store) FetchMyListings(ctx context.Context) error {
	const op = "fetch_my_listings"
	seq := s.beginFetch(fetchMyListings)

	owner, ok := s.owner.Owner()
	if !ok {
		return s.failFetch(fetchMyListings, seq, op, msgFetchMyListings, ErrNoOwner)
	}

	items, err := s.backend.ListMyListings(ctx, owner.ID)
	if err != nil {
		return s.failFetch(fetchMyListings, seq, op, msgFetchMyListings, err)
	}

	s.update(func() {
		s.inFlight--
		if seq > s.applied[fetchMyListings] {
			s.applied[fetchMyListings] = seq
			s.myListings = cloneListings(items)
		}
	})
	s.log.Debug("own listings fetched", zap.Int("count", len(items)), zap.Uint64("seq", seq))
	return nil
}

// FetchMyBookings replaces the signed-in user's bookings.
func (s *Store) FetchMyBookings(ctx context.Context) error {
	const op = "fetch_my_bookings"
	seq := s.beginFetch(fetchBookings)

	owner, ok := s.owner.Owner()
	if !ok {
		return s.failFetch(fetchBookings, seq, op, msgFetchBookings, ErrNoOwner)
	}

	items, err := s.backend.ListBookings(ctx, owner.ID)
	if err != nil {
		return s.failFetch(fetchBookings, seq, op, msgFetchBookings, err)
	}

	s.update(func() {
		s.inFlight--
		if seq > s.applied[fetchBookings] {
			s.applied[fetchBookings] = seq
			s.bookings = slices.Clone(items)
		}
	})
	s.log.Debug("bookings fetched", zap.Int("count", len(items)), zap.Uint64("seq", seq))
	return nil
}

// Refresh runs the three fetches concurrently and returns the first error.
// Every fetch runs to completion even when another one fails.
func (s *Store) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.FetchListings(ctx) })
	g.Go(func() error { return s.FetchMyListings(ctx) })
	g.Go(func() error { return s.FetchMyBookings(ctx) })
	return g.Wait()
}

// CreateListing turns d into a listing owned by the signed-in user and stores it.
// On success the listing is appended to both Listings and MyListings;
// on any failure neither collection changes.
func (s *Store) CreateListing(ctx context.Context, d Draft) (StorageListing, error) {
	const op = "create_listing"
	s.begin()

	owner, ok := s.owner.Owner()
	if !ok {
		return StorageListing{}, s.fail(op, msgCreateListing, ErrNoOwner, ErrCreateFailed)
	}

	d = d.normalized()
	if err := s.validator.Validate(d); err != nil {
		return StorageListing{}, s.fail(op, msgCreateListing, ErrInvalidDraft, errors.Join(ErrCreateFailed, err))
	}

	l := StorageListing{
		ID:           s.newID(),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Location:     d.Location,
		Images:       slices.Clone(d.Images),
		Size:         d.Size,
		Amenities:    d.Amenities,
		OwnerID:      owner.ID,
		OwnerName:    owner.Name,
		Rating:       0,
		ReviewCount:  0,
		Availability: d.Availability,
		CreatedAt:    s.now().UTC(),
	}

	stored, err := s.backend.CreateListing(ctx, l)
	if err != nil {
		return StorageListing{}, s.fail(op, msgCreateListing, ErrCreateFailed, err)
	}

	s.update(func() {
		s.inFlight--
		s.listings = append(s.listings, stored.Clone())
		s.myListings = append(s.myListings, stored.Clone())
	})
	s.log.Info("listing created", zap.String("listing_id", stored.ID), zap.String("owner_id", owner.ID))
	return stored.Clone(), nil
}

// BookListing books listingID for the signed-in user between start and end,
// both taken as calendar dates. The listing must be present in the current
// Listings; nothing is re-fetched. The booking starts out pending at the
// listing's current price.
func (s *Store) BookListing(ctx context.Context, listingID string, start, end time.Time) (Booking, error) {
	const op = "book_listing"
	s.begin()

	owner, ok := s.owner.Owner()
	if !ok {
		return Booking{}, s.fail(op, msgBookListing, ErrNoOwner, ErrBookingFailed)
	}

	start, end = calendarDate(start), calendarDate(end)
	if end.Before(start) {
		return Booking{}, s.fail(op, msgBookListing, ErrInvalidDateRange, ErrBookingFailed)
	}

	l, found := s.GetListingByID(listingID)
	if !found {
		return Booking{}, s.fail(op, msgBookListing, ErrListingNotFound, ErrBookingFailed)
	}

	b := Booking{
		ID:         s.newID(),
		ListingID:  l.ID,
		UserID:     owner.ID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: l.Price,
		Status:     StatusPending,
		CreatedAt:  s.now().UTC(),
	}

	stored, err := s.backend.CreateBooking(ctx, b)
	if err != nil {
		return Booking{}, s.fail(op, msgBookListing, ErrBookingFailed, err)
	}

	s.update(func() {
		s.inFlight--
		s.bookings = append(s.bookings, stored)
	})
	s.log.Info("listing booked", zap.String("booking_id", stored.ID), zap.String("listing_id", l.ID))
	return stored, nil
}

// GetListingByID looks id up in the current listings.
func (s *Store) GetListingByID(id string) (StorageListing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Store) findLocked(id string) (StorageListing, bool) {
	for _, l := range s.listings {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return StorageListing{}, false
}

// SetSelectedListing remembers id for a detail view. An empty id clears it.
func (s *Store) SetSelectedListing(id string) {
	s.update(func() { s.selectedID = id })
}

// SelectedListing resolves the selected id against the current listings.
func (s *Store) SelectedListing() (StorageListing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return StorageListing{}, false
	}
	return s.findLocked(s.selectedID)
}

// ClearError empties the error slot. Clearing an empty slot does nothing.
func (s *Store) ClearError() {
	s.mu.Lock()
	empty := s.errMsg == ""
	s.mu.Unlock()
	if empty {
		return
	}
	s.update(func() { s.errMsg = "" })
}

// Search filters the current listings with c.
func (s *Store) Search(c SearchCriteria) []StorageListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Search(s.listings, c)
}

func (d Draft) normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Size = strings.TrimSpace(d.Size)
	d.Location.Address = strings.TrimSpace(d.Location.Address)
	d.Amenities = normalizeAmenities(d.Amenities)
	return d
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
