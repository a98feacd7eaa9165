package auth

import "context"

type contextKey struct{}

// Context is the resolved identity of the calling client: one authenticated
// (family, member) pair per connected session.
type Context struct {
	FamilyCode string
	Username   string
	Name       string
	Role       string
	SessionID  int64
}

func WithAuth(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}

func FamilyCode(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.FamilyCode
}

func Username(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.Username
}
