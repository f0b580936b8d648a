package http

import (
	"time"

	"github.com/nekogravitycat/garage-storage-backend/internal/session"
)

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u session.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// LoginRequest defines the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the payload for registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the token and user info.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// SessionResponse describes the session state.
type SessionResponse struct {
	IsAuthenticated bool          `json:"is_authenticated"`
	IsLoading       bool          `json:"is_loading"`
	User            *UserResponse `json:"user"`
}

func NewSessionResponse(st session.State) SessionResponse {
	resp := SessionResponse{
		IsAuthenticated: st.IsAuthenticated,
		IsLoading:       st.IsLoading,
	}
	if st.User != nil {
		u := NewUserResponse(*st.User)
		resp.User = &u
	}
	return resp
}
