package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/garage-storage-backend/internal/auth"
	"github.com/nekogravitycat/garage-storage-backend/internal/listing"
	listingHttp "github.com/nekogravitycat/garage-storage-backend/internal/listing/http"
	"github.com/nekogravitycat/garage-storage-backend/internal/session"
	sessionHttp "github.com/nekogravitycat/garage-storage-backend/internal/session/http"
)

// Config carries what the router needs from the container.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger
	JWTManager   *auth.JWTManager
	Session      *session.Store
	Listings     *listing.Store
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - RequestLogger: Logs request information through zap.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(cfg.Logger.Named("http")), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Expo dev server
			"http://localhost:19006",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sessionMiddleware: Further checks that the token belongs to the signed-in user.
	sessionMiddleware := RequireSession(cfg.Session)

	sessionHandler := sessionHttp.NewHandler(cfg.Session)
	listingHandler := listingHttp.NewHandler(cfg.Listings)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		sessionHttp.RegisterRoutes(v1, sessionHandler, authMiddleware, sessionMiddleware)
		listingHttp.RegisterRoutes(v1, listingHandler, authMiddleware, sessionMiddleware)
	}

	return r
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
