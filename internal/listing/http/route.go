package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers listing, booking and store-state routes.
// Writes and per-user reads need a valid token for the live session.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, sessionMiddleware gin.HandlerFunc) {
	listings := g.Group("/listings")
	{
		listings.GET("", h.List)
		listings.GET("/search", h.Search)
		listings.GET("/amenities", h.Amenities)
		listings.GET("/:id", h.Get)
		listings.POST("/refresh", h.Refresh)
		listings.POST("", authMiddleware, sessionMiddleware, h.Create)
	}

	// === Authenticated Routes ===
	me := g.Group("/me", authMiddleware, sessionMiddleware)
	{
		me.GET("/listings", h.MyListings)
		me.GET("/bookings", h.MyBookings)
	}
	g.POST("/bookings", authMiddleware, sessionMiddleware, h.Book)

	state := g.Group("/state")
	{
		state.GET("", h.State)
		state.DELETE("/error", h.ClearError)
		state.PUT("/selection", h.Select)
	}
}
