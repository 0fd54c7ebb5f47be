package httpx

import (
	"context"

	domainauth "github.com/consultdesk/erp-ui/internal/domain/auth"
)

// sessionStateKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionStateKey struct{}

// SetSessionStateInContext returns a child context that carries the request's session state.
func SetSessionStateInContext(ctx context.Context, state domainauth.State) context.Context {
	return context.WithValue(ctx, sessionStateKey{}, state)
}

// SessionStateFromContext returns the session state loaded for this request.
// Requests that never went through SessionLoader are unauthenticated.
func SessionStateFromContext(ctx context.Context) domainauth.State {
	if state, ok := ctx.Value(sessionStateKey{}).(domainauth.State); ok {
		return state
	}
	return domainauth.Unauthenticated()
}

// GetUserSessionFromContext returns the active session and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	return SessionStateFromContext(ctx).Session()
}

// requestIDKey carries the per-request correlation id.
type requestIDKey struct{}

func setRequestIDInContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
