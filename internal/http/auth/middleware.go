package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
)

type actorKey struct{}

// Verify checks the bearer token and attaches the acting user to the
// request context.
func (h *Handler) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		var c claims

		token, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
			return h.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(c.Subject, 10, 64)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		actor := session.Actor{ID: id, Username: c.Username, Role: user.Role(c.Role)}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func WithActor(ctx context.Context, actor session.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the authenticated actor, falling back to the
// system actor when the request carried none.
func ActorFromContext(ctx context.Context) session.Actor {
	if actor, ok := ctx.Value(actorKey{}).(session.Actor); ok {
		return actor
	}

	return session.System
}
