package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/strategy-canvas/auth-service/internal/gate"
	"github.com/strategy-canvas/auth-service/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateMiddleware(t *testing.T) {
	j := jwt.New(jwt.WithSecretKey("test-secret"), jwt.WithExpiration(time.Minute))
	validToken, err := j.Generate(context.Background(), uuid.New(), "user@example.com")
	require.NoError(t, err)

	handler := GateMiddleware(gate.New(j))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("protected path without token redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?returnUrl=%2Fdashboard", rec.Header().Get("Location"))
		assert.Empty(t, rec.Result().Cookies(), "no token to clear")
	})

	t.Run("invalid token is cleared on redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, jwt.CookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("authenticated caller bounced off login honors returnUrl", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login?returnUrl=/demo-auth", nil)
		req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: validToken})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/demo-auth", rec.Header().Get("Location"))
	})

	t.Run("allowed navigation reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("authenticated protected navigation passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: validToken})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
