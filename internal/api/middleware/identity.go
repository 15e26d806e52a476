package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/tictacgo/internal/api/apierr"
	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/services/session"
)

type contextKey string

const identityContextKey contextKey = "identity"

// RequireIdentity rejects requests while nobody is signed in and puts the
// current identity in the request context
func RequireIdentity(sess *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sess.Current()
			if id.IsGuest() {
				apierr.WriteError(w, apierr.NewNoIdentityError())
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the identity from the request context, or the guest
// identity
func GetIdentity(ctx context.Context) model.Identity {
	id, _ := ctx.Value(identityContextKey).(model.Identity)
	return id
}

// MustGetIdentity returns the signed-in identity or panics
func MustGetIdentity(ctx context.Context) model.Identity {
	id := GetIdentity(ctx)
	if id.IsGuest() {
		panic("no identity in context - identity middleware not applied?")
	}
	return id
}
