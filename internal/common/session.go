package common

import "context"

// Session is the authenticated caller of an RPC.
type Session struct {
	AccountID string
	Email     string
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.AccountID == "" {
		return Session{}, false
	}
	return s, true
}
