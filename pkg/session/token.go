// Package session tracks auth token presence. Token lifecycle (refresh,
// expiry) belongs to the server; the engine only needs to know whether a
// session is authenticated and what bearer value to attach.
package session

import (
	"context"

	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
	"github.com/adilzhan-dev/orda-storefront/pkg/storage"
)

const tokenKey = "auth:token"

// TokenStore reads and writes the auth token through the local KV layer.
type TokenStore struct {
	kv   storage.KV
	logg *logger.Logger
}

func NewTokenStore(kv storage.KV, logg *logger.Logger) *TokenStore {
	return &TokenStore{kv: kv, logg: logg}
}

// Token returns the stored bearer token. Storage failures read as "no
// token" so an unreadable disk never blocks anonymous browsing.
func (t *TokenStore) Token(ctx context.Context) (string, bool) {
	value, found, err := t.kv.Get(ctx, tokenKey)
	if err != nil {
		if t.logg != nil {
			t.logg.Warn(ctx, "token read failed, treating session as anonymous")
		}
		return "", false
	}
	if !found || value == "" {
		return "", false
	}
	return value, true
}

// Authenticated reports whether a token is present.
func (t *TokenStore) Authenticated(ctx context.Context) bool {
	_, ok := t.Token(ctx)
	return ok
}

func (t *TokenStore) SetToken(ctx context.Context, token string) error {
	return t.kv.Set(ctx, tokenKey, token)
}

func (t *TokenStore) ClearToken(ctx context.Context) error {
	return t.kv.Remove(ctx, tokenKey)
}
