package session

import (
	"context"
	"time"
)

type Session struct {
	TokenHash       string
	UserID          int64
	ActiveJournalID *string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// Identity - кто выполняет запрос; SessionID это хэш токена
type Identity struct {
	UserID    int64
	SessionID string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.UserID != 0
}
