package listing

import (
	"context"
	"sync"
	"time"
)

// Op names a Backend call, used for fault injection and logging.
type Op string

const (
	OpListListings   Op = "list_listings"
	OpListMyListings Op = "list_my_listings"
	OpListBookings   Op = "list_bookings"
	OpCreateListing  Op = "create_listing"
	OpCreateBooking  Op = "create_booking"
)

// SimulatedConfig holds the latencies of the simulated backend.
type SimulatedConfig struct {
	ReadDelay  time.Duration
	WriteDelay time.Duration
	BookDelay  time.Duration
}

// FixtureUserID owns the fixture bookings until a real user claims them.
const FixtureUserID = "1"

// SimulatedBackend is an in-memory Backend that waits a fixed delay before
// answering. It starts with the fixture listings and bookings and keeps
// whatever is created afterwards. The fixture bookings are handed to the
// first user whose bookings are listed.
type SimulatedBackend struct {
	cfg SimulatedConfig

	mu       sync.Mutex
	listings []StorageListing
	bookings []Booking
	faults   map[Op]error
	claimed  bool
}

// NewSimulatedBackend creates a backend seeded with the fixtures.
func NewSimulatedBackend(cfg SimulatedConfig) *SimulatedBackend {
	return &SimulatedBackend{
		cfg:      cfg,
		listings: FixtureListings(),
		bookings: FixtureBookings(),
		faults:   make(map[Op]error),
	}
}

// FailWith makes every later call of op fail with err. A nil err clears the fault.
func (b *SimulatedBackend) FailWith(op Op, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.faults, op)
		return
	}
	b.faults[op] = err
}

// wait sleeps for d or until ctx is done, then reports any injected fault for op.
func (b *SimulatedBackend) wait(ctx context.Context, op Op, d time.Duration) error {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.faults[op]
}

func (b *SimulatedBackend) ListListings(ctx context.Context) ([]StorageListing, error) {
	if err := b.wait(ctx, OpListListings, b.cfg.ReadDelay); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneListings(b.listings), nil
}

func (b *SimulatedBackend) ListMyListings(ctx context.Context, ownerID string) ([]StorageListing, error) {
	if err := b.wait(ctx, OpListMyListings, b.cfg.ReadDelay/2); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]StorageListing, 0)
	for _, l := range b.listings {
		if l.OwnerID == ownerID {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (b *SimulatedBackend) ListBookings(ctx context.Context, userID string) ([]Booking, error) {
	if err := b.wait(ctx, OpListBookings, b.cfg.ReadDelay/2); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.claimed {
		b.claimed = true
		for i := range b.bookings {
			if b.bookings[i].UserID == FixtureUserID {
				b.bookings[i].UserID = userID
			}
		}
	}
	out := make([]Booking, 0)
	for _, bk := range b.bookings {
		if bk.UserID == userID {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (b *SimulatedBackend) CreateListing(ctx context.Context, l StorageListing) (StorageListing, error) {
	if err := b.wait(ctx, OpCreateListing, b.cfg.WriteDelay); err != nil {
		return StorageListing{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listings = append(b.listings, l.Clone())
	return l.Clone(), nil
}

func (b *SimulatedBackend) CreateBooking(ctx context.Context, bk Booking) (Booking, error) {
	if err := b.wait(ctx, OpCreateBooking, b.cfg.BookDelay); err != nil {
		return Booking{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookings = append(b.bookings, bk)
	return bk, nil
}

func cloneListings(in []StorageListing) []StorageListing {
	out := make([]StorageListing, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}
