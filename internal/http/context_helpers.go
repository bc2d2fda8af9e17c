package httpx

import (
	"context"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying the given session.
func SetSessionInContext(ctx context.Context, sess domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session from the context and whether one is
// present. The session middleware puts one on every request it wraps.
func SessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	if sess, ok := ctx.Value(sessionKey{}).(domainauth.Session); ok {
		return sess, true
	}
	return domainauth.Session{}, false
}
