package authx

import "context"

type sessionProfileKey struct{}

// SessionProfile represents the session context stored for downstream
// consumers after a successful login or a dev bypass.
type SessionProfile struct {
	Profile   *UserProfile
	DevBypass bool
}

// BindSessionProfile stores the session profile inside the context for
// downstream consumers.
func BindSessionProfile(ctx context.Context, session SessionProfile) context.Context {
	return context.WithValue(ctx, sessionProfileKey{}, session)
}

// SessionProfileFromContext retrieves a session profile previously stored in
// the context.
func SessionProfileFromContext(ctx context.Context) (SessionProfile, bool) {
	if ctx == nil {
		return SessionProfile{}, false
	}
	value := ctx.Value(sessionProfileKey{})
	if value == nil {
		return SessionProfile{}, false
	}
	session, ok := value.(SessionProfile)
	return session, ok
}
