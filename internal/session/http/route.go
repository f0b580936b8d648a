package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the session routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, sessionMiddleware gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/restore", h.Restore)
		authGroup.POST("/logout", authMiddleware, sessionMiddleware, h.Logout)
	}

	// Authenticated Routes
	g.GET("/me", authMiddleware, sessionMiddleware, h.Me)
}
