// Package actor carries the id of the user performing a request through context.
package actor

import "context"

type ctxKey struct{}

// WithUser returns a copy of ctx that carries the acting user id
func WithUser(ctx context.Context, userID uint64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the acting user id, if one was set
func UserID(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(ctxKey{}).(uint64)
	return id, ok && id != 0
}

// UserIDPtr is UserID as a nullable column value
func UserIDPtr(ctx context.Context) *uint64 {
	if id, ok := UserID(ctx); ok {
		return &id
	}
	return nil
}
