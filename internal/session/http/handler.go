package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/garage-storage-backend/internal/pkg/response"
	"github.com/nekogravitycat/garage-storage-backend/internal/session"
)

type Handler struct {
	store *session.Store
}

func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// Login signs the session in. Any password is accepted.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	u, err := h.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, u)
}

// Register signs the session in as a new user.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	u, err := h.store.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, u)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, u session.User) {
	token, err := h.store.Token()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(status, LoginResponse{AccessToken: token, User: NewUserResponse(u)})
}

// Restore re-runs session initialisation from the saved token.
func (h *Handler) Restore(c *gin.Context) {
	if err := h.store.Initialize(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSessionResponse(h.store.State()))
}

// Me returns the session state of the signed-in user.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, NewSessionResponse(h.store.State()))
}

func (h *Handler) Logout(c *gin.Context) {
	h.store.Logout()
	c.Status(http.StatusNoContent)
}
