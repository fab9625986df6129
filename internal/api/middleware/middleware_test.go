package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/api/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	t.Run("Success - Generates correlation id and passes status through", func(t *testing.T) {
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotNil(t, middleware.LoggerFromContext(r.Context()))
			w.WriteHeader(http.StatusTeapot)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		_, err := uuid.Parse(rr.Header().Get("X-Request-ID"))
		assert.NoError(t, err)
	})

	t.Run("Success - Keeps incoming correlation id", func(t *testing.T) {
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
	})
}

func TestCartSession(t *testing.T) {
	var seen string

	handler := middleware.CartSession(time.Hour, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.CartSessionFromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	t.Run("Success - Issues a new session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rr.Header().Get(middleware.CartSessionHeader))

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.CartSessionCookie, cookies[0].Name)
		assert.Equal(t, seen, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("Success - Reuses session from cookie", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.CartSessionCookie, Value: id})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, id, seen)
	})

	t.Run("Success - Header wins over cookie", func(t *testing.T) {
		headerID := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.CartSessionHeader, headerID)
		req.AddCookie(&http.Cookie{Name: middleware.CartSessionCookie, Value: uuid.NewString()})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, headerID, seen)
	})

	t.Run("Success - Invalid session is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.CartSessionCookie, Value: "../../etc/passwd"})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "../../etc/passwd", seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}
