package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the caller as established by the gate. Header identities carry only Value;
// bearer identities also carry the account id from the token.
type Identity struct {
	AccountID uuid.UUID
	Value     string
	Email     string
	Name      string
}

func (i Identity) HasAccount() bool {
	return i.AccountID != uuid.Nil
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
