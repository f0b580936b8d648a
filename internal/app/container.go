package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/garage-storage-backend/internal/api"
	"github.com/nekogravitycat/garage-storage-backend/internal/auth"
	"github.com/nekogravitycat/garage-storage-backend/internal/listing"
	"github.com/nekogravitycat/garage-storage-backend/internal/session"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	Session      session.Config

	// Backend serves the listings store. Nil selects a simulated backend
	// built from Simulated.
	Backend   listing.Backend
	Simulated listing.SimulatedConfig

	// Tokens keeps the session token between Initialize calls.
	// Nil selects an in-memory store.
	Tokens session.TokenStore
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Session    *session.Store
	Listings   *listing.Store
	Backend    listing.Backend
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = session.NewMemoryTokenStore()
	}

	backend := cfg.Backend
	if backend == nil {
		backend = listing.NewSimulatedBackend(cfg.Simulated)
	}

	// Session Module
	sessionStore := session.NewStore(jwtManager, tokens, log, cfg.Session)

	// Listings Module
	listingStore := listing.NewStore(backend, SessionOwner(sessionStore), log)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       log,
		JWTManager:   jwtManager,
		Session:      sessionStore,
		Listings:     listingStore,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Session:    sessionStore,
		Listings:   listingStore,
		Backend:    backend,
	}
}

// Close releases the stores' subscribers.
func (c *Container) Close() {
	c.Listings.Close()
}

// SessionOwner exposes the signed-in session user as the listings owner.
func SessionOwner(s *session.Store) listing.OwnerSource {
	return listing.OwnerFunc(func() (listing.Owner, bool) {
		u, ok := s.CurrentUser()
		if !ok {
			return listing.Owner{}, false
		}
		return listing.Owner{ID: u.ID, Name: u.Name}, true
	})
}
