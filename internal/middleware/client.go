// Package middleware holds the HTTP wrappers shared by every route.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

const sessionClientIDKey = "client:id"

type contextKey string

const clientIDContextKey contextKey = "client_id"

// ClientID gives every browser session a stable anonymous id, kept in the
// scs session and exposed on the request context. It must run inside
// sm.LoadAndSave.
func ClientID(sm *scs.SessionManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := sm.GetString(ctx, sessionClientIDKey)
			if id == "" {
				id = uuid.NewString()
				sm.Put(ctx, sessionClientIDKey, id)
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(ctx, id)))
		})
	}
}

// WithClientID returns a context carrying id.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDContextKey, id)
}

// ClientIDFromContext returns the id set by ClientID, or "".
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDContextKey).(string)
	return id
}
