package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Round Trip", func(t *testing.T) {
		token, err := m.GenerateAccessToken(Identity{UserID: "u1", Email: "a@b.c", Name: "A B", CreatedAt: created})
		require.NoError(t, err)

		claims, err := m.ParseAndValidate(token)
		require.NoError(t, err)
		id := claims.Identity()
		assert.Equal(t, "u1", id.UserID)
		assert.Equal(t, "a@b.c", id.Email)
		assert.Equal(t, "A B", id.Name)
		assert.True(t, created.Equal(id.CreatedAt))
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := NewJWTManager("other", time.Hour).GenerateAccessToken(Identity{UserID: "u1"})
		require.NoError(t, err)
		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		old := NewJWTManager("secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := old.GenerateAccessToken(Identity{UserID: "u1"})
		require.NoError(t, err)
		_, err = m.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ParseAndValidate("not-a-token")
		assert.Error(t, err)
	})
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Hour)

	r := gin.New()
	r.GET("/who", AuthRequired(m), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+"|"+GetUserEmail(c))
	})

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	token, err := m.GenerateAccessToken(Identity{UserID: "u1", Email: "a@b.c"})
	require.NoError(t, err)

	t.Run("Valid Token", func(t *testing.T) {
		w := serve("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1|a@b.c", w.Body.String())
	})

	t.Run("Scheme Is Case Insensitive", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve("bearer "+token).Code)
	})

	t.Run("Missing Header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("").Code)
	})

	t.Run("Wrong Scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Basic "+token).Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer nope").Code)
	})
}
