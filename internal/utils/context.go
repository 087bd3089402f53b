// Package utils holds small helpers shared by the HTTP handlers, the
// services and the REST adapter: request-context keys, JSON response
// writing, trace id generation, JWT handling and the resty client.
package utils

import (
	"context"
)

// contextKey prevents collisions with string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the id of the authenticated caller. It is set by the
// auth middlewares and read by the notes handlers.
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext returns the caller id stored in ctx. ok is false when
// the value is missing or is not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
