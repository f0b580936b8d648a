package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/garage-storage-backend/internal/auth"
)

// Config holds the simulated latencies of the session backend.
type Config struct {
	AuthDelay    time.Duration // login and register
	RestoreDelay time.Duration // initialize
}

// Store holds at most one signed-in user. Credentials are not verified:
// any email and password sign in.
type Store struct {
	cfg    Config
	jwt    *auth.JWTManager
	tokens TokenStore
	log    *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	user     *User
	inFlight int
	subs     map[int]func(State)
	nextSub  int
	version  uint64

	notifyMu  sync.Mutex
	delivered uint64
}

// NewStore creates a signed-out session.
func NewStore(jwtManager *auth.JWTManager, tokens TokenStore, log *zap.Logger, cfg Config) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		cfg:    cfg,
		jwt:    jwtManager,
		tokens: tokens,
		log:    log.Named("session"),
		now:    time.Now,
		subs:   make(map[int]func(State)),
	}
}

// State returns a copy of the session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CurrentUser returns the signed-in user, if any.
func (s *Store) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Subscribe registers fn to receive the state after every change.
// Deliveries are serialised and stale snapshots are dropped, so fn never sees
// an older state after a newer one. fn must not change the session.
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
	st := State{
		IsAuthenticated: s.user != nil,
		IsLoading:       s.inFlight > 0,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	s.version++
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

// Login signs in as email. The user id is derived from the normalised email,
// so signing in twice with the same address yields the same user.
func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	u := User{
		ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(),
		Name:      nameFromEmail(email),
		Email:     email,
		CreatedAt: s.now().UTC(),
	}
	return s.signIn(ctx, "login", u)
}

// Register signs in as a new user with a fresh random id.
func (s *Store) Register(ctx context.Context, name, email, password string) (User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" {
		name = nameFromEmail(email)
	}
	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: s.now().UTC(),
	}
	return s.signIn(ctx, "register", u)
}

func (s *Store) signIn(ctx context.Context, op string, u User) (User, error) {
	s.update(func() { s.inFlight++ })
	done := func(user *User) {
		s.update(func() {
			s.inFlight--
			if user != nil {
				s.user = user
			}
		})
	}

	if err := sleep(ctx, s.cfg.AuthDelay); err != nil {
		done(nil)
		return User{}, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwt.GenerateAccessToken(auth.Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	})
	if err != nil {
		done(nil)
		s.log.Error("failed to issue session token", zap.String("op", op), zap.Error(err))
		return User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.tokens.Save(token); err != nil {
		done(nil)
		s.log.Error("failed to save session token", zap.String("op", op), zap.Error(err))
		return User{}, fmt.Errorf("%s: save token: %w", op, err)
	}

	done(&u)
	s.log.Info("signed in", zap.String("op", op), zap.String("user_id", u.ID))
	return u, nil
}

// Token returns the access token of the current session.
func (s *Store) Token() (string, error) {
	if _, ok := s.CurrentUser(); !ok {
		return "", ErrNoToken
	}
	return s.tokens.Load()
}

// Logout signs out immediately and forgets the saved token.
func (s *Store) Logout() {
	s.update(func() { s.user = nil })
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("failed to clear session token", zap.Error(err))
	}
	s.log.Info("signed out")
}

// Initialize restores the session from the saved token. Without a valid
// token the session ends up signed out. Only ctx cancellation is an error.
func (s *Store) Initialize(ctx context.Context) error {
	s.update(func() { s.inFlight++ })

	if err := sleep(ctx, s.cfg.RestoreDelay); err != nil {
		s.update(func() { s.inFlight-- })
		return fmt.Errorf("initialize: %w", err)
	}

	var restored *User
	token, err := s.tokens.Load()
	switch {
	case errors.Is(err, ErrNoToken):
		s.log.Debug("no saved session")
	case err != nil:
		s.log.Warn("failed to load session token", zap.Error(err))
	default:
		claims, perr := s.jwt.ParseAndValidate(token)
		if perr != nil {
			s.log.Info("saved session rejected", zap.Error(perr))
			if cerr := s.tokens.Clear(); cerr != nil {
				s.log.Warn("failed to clear session token", zap.Error(cerr))
			}
			break
		}
		id := claims.Identity()
		restored = &User{ID: id.UserID, Name: id.Name, Email: id.Email, CreatedAt: id.CreatedAt}
	}

	s.update(func() {
		s.inFlight--
		s.user = restored
	})
	if restored != nil {
		s.log.Info("session restored", zap.String("user_id", restored.ID))
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nameFromEmail turns "john.doe@example.com" into "John Doe".
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, p := range parts {
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
