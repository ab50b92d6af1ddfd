package middleware

import (
	"context"
	"crypto/rand"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"creativetech.dev/internal/logger"
)

const (
	sessionName  = "portfolio_session"
	sessionIDKey = "id"
)

const ctxKeySessionID ctxKey = "session_id"

// NewSessionStore returns a signed cookie store. An empty secret gets a
// random per-process key, so sessions do not survive a restart.
func NewSessionStore(secret string) *sessions.CookieStore {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	store := sessions.NewCookieStore(key)
	store.MaxAge(86400) // 1 day
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// Session gives every visitor a stable session id, stored in a signed
// cookie and placed in the request context.
func Session(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r, sessionName)
			if err != nil {
				// Tampered or expired cookie; sess is a fresh session.
				log.Debug("discarding invalid session cookie", logger.Error(err))
			}
			id, _ := sess.Values[sessionIDKey].(string)
			if id == "" {
				id = uuid.NewString()
				sess.Values[sessionIDKey] = id
				if err := sess.Save(r, w); err != nil {
					log.Warn("save session failed", logger.Error(err))
				}
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// WithSessionID stores the visitor's session id
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, id)
}

// SessionID returns the visitor's session id, empty outside the Session middleware
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeySessionID).(string)
	return id
}
