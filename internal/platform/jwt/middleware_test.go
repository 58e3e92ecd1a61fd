package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockAuthorizer is a mock implementation of the Authorizer interface.
type mockAuthorizer struct {
	AuthorizeFunc func(ctx context.Context, token string) (Principal, error)
}

// Authorize is the mock implementation of the Authorize method.
func (m *mockAuthorizer) Authorize(ctx context.Context, token string) (Principal, error) {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, token)
	}
	return Principal{}, errors.New("unauthorized") // Default: rejection
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(auth Authorizer) *gin.Engine {
		r := gin.New()
		r.GET("/protected", AuthRequired(auth), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"userID": c.GetUint(ContextUserID),
				"email":  c.GetString(ContextUserEmail),
			})
		})
		return r
	}

	t.Run("missing Authorization header is rejected", func(t *testing.T) {
		router := newRouter(&mockAuthorizer{})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer Authorization header is rejected", func(t *testing.T) {
		router := newRouter(&mockAuthorizer{})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token returns 401", func(t *testing.T) {
		auth := &mockAuthorizer{
			AuthorizeFunc: func(ctx context.Context, token string) (Principal, error) {
				return Principal{}, errors.New("user not found")
			},
		}
		router := newRouter(auth)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authorized principal is stored in the context", func(t *testing.T) {
		var gotToken string
		auth := &mockAuthorizer{
			AuthorizeFunc: func(ctx context.Context, token string) (Principal, error) {
				gotToken = token
				return Principal{UserID: 7, Email: "user@example.com"}, nil
			},
		}
		router := newRouter(auth)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "valid-token", gotToken, "token was not passed to the authorizer")
		assert.JSONEq(t, `{"userID":7,"email":"user@example.com"}`, w.Body.String())
	})
}
