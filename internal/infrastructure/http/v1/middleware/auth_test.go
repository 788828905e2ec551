package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appctx "ferropos/internal/core/context"
)

type stubValidator struct {
	user *appctx.UserContext
	err  error
}

func (v stubValidator) ValidateToken(string) (*appctx.UserContext, error) {
	return v.user, v.err
}

func newAuthTestRouter(v JWTValidator, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	handlers := append([]gin.HandlerFunc{Auth(v)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID, "role": user.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cashier := &appctx.UserContext{UserID: 42, Username: "cashier1", Role: "cashier"}

	tests := []struct {
		name       string
		validator  stubValidator
		header     string
		wantStatus int
	}{
		{
			name:       "valid token",
			validator:  stubValidator{user: cashier},
			header:     "Bearer good-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			validator:  stubValidator{user: cashier},
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			validator:  stubValidator{user: cashier},
			header:     "good-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			validator:  stubValidator{err: errors.New("expired")},
			header:     "Bearer stale-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(tt.validator)
			w := doRequest(router, tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := &appctx.UserContext{UserID: 1, Username: "boss", Role: "admin", IsAdmin: true}
	cashier := &appctx.UserContext{UserID: 42, Username: "cashier1", Role: "cashier"}

	t.Run("admin passes", func(t *testing.T) {
		router := newAuthTestRouter(stubValidator{user: admin}, RequireRole("admin"))
		w := doRequest(router, "Bearer token")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cashier forbidden", func(t *testing.T) {
		router := newAuthTestRouter(stubValidator{user: cashier}, RequireRole("admin"))
		w := doRequest(router, "Bearer token")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("any listed role passes", func(t *testing.T) {
		router := newAuthTestRouter(stubValidator{user: cashier}, RequireRole("admin", "cashier"))
		w := doRequest(router, "Bearer token")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
