package auth

import (
	"context"

	"github.com/dmitrymomot/authkit/pkg/auth"
)

type accountContextKey struct{}

// SetAccountToContext stores the authenticated account for handlers down the chain.
func SetAccountToContext(ctx context.Context, account *auth.Account) context.Context {
	return context.WithValue(ctx, accountContextKey{}, account)
}

// GetAccountFromContext retrieves the authenticated account.
// Returns nil if none was stored.
func GetAccountFromContext(ctx context.Context) *auth.Account {
	account, _ := ctx.Value(accountContextKey{}).(*auth.Account)
	return account
}
