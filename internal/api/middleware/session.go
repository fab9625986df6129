package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CartSessionCookie = "cart_session"
	CartSessionHeader = "X-Cart-Session"
)

type sessionContextKey struct{}

// CartSession binds every request to a cart session id. The id comes from the
// cart_session cookie or the X-Cart-Session header; a fresh one is issued when
// neither carries a valid UUID.
func CartSession(ttl time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			sessionID, ok := sessionFromRequest(r)
			if !ok {
				sessionID = uuid.NewString()
				LoggerFromContext(r.Context()).Debug("Issued new cart session", slog.String("cart_session", sessionID))
			}

			http.SetCookie(w, &http.Cookie{
				Name:     CartSessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(CartSessionHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sessionID)
			ctx = WithLogger(ctx, LoggerFromContext(ctx).With(slog.String("cart_session", sessionID)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithCartSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sessionID)
}

func CartSessionFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionContextKey{}).(string)
	return sessionID, ok && sessionID != ""
}

func sessionFromRequest(r *http.Request) (string, bool) {
	candidates := []string{r.Header.Get(CartSessionHeader)}
	if c, err := r.Cookie(CartSessionCookie); err == nil {
		candidates = append(candidates, c.Value)
	}

	for _, candidate := range candidates {
		if id, err := uuid.Parse(candidate); err == nil {
			return id.String(), true
		}
	}

	return "", false
}
