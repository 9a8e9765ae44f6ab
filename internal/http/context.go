package http

import "context"

type sessionIDKey struct{}
type ruleIDKey struct{}

// ContextWithSessionID stores the path session ID on the context.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext extracts a session ID stored by the router.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok
}

// ContextWithRuleID stores the path recurrence rule ID on the context.
func ContextWithRuleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ruleIDKey{}, id)
}

// RuleIDFromContext extracts a rule ID stored by the router.
func RuleIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ruleIDKey{}).(string)
	return id, ok
}
