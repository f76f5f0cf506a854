package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/pcview/internal/config"
)

type CtxKey int

const (
	CtxUserClaims CtxKey = iota
)

// UserClaims returns the claims Auth stored in ctx.
func UserClaims(ctx context.Context) (*config.UserClaims, bool) {
	claims, ok := ctx.Value(CtxUserClaims).(*config.UserClaims)
	return claims, ok && claims != nil
}

func WithUserClaims(ctx context.Context, claims *config.UserClaims) context.Context {
	return context.WithValue(ctx, CtxUserClaims, claims)
}

// Auth attaches the claims of a valid session to the request context. Stale
// or forged cookies are cleared.
func Auth(logger *slog.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseUserClaims(r)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					logger.Debug("rejected session cookies", slog.Any("error", err))
					cookies.Clear(w)
				}
				h.ServeHTTP(w, r)
				return
			}
			h.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
		})
	}
}

// RequireAuth answers 401 to requests without a session.
func RequireAuth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserClaims(r.Context()); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		h(w, r)
	}
}
