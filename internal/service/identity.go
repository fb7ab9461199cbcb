package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/geostack/backend/internal/config"
	"github.com/geostack/backend/internal/model"
)

// ResolverStore is the account-store slice the resolver needs. Lookups
// return (nil, nil) when nothing matches.
type ResolverStore interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByAPIKeyHash(ctx context.Context, keyHash string) (*model.Account, error)
}

// IdentityResolver derives the current account from raw request
// credentials: a bearer token, or a service-account API key when that
// path is enabled.
type IdentityResolver struct {
	store             ResolverStore
	tokens            *TokenService
	apiKeyAuthEnabled bool
}

func NewIdentityResolver(store ResolverStore, tokens *TokenService, cfg config.AuthConfig) (*IdentityResolver, error) {
	apiKeyAuthEnabled, err := parseBool(cfg.EnableServiceAccountAuth, false)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ENABLE_SERVICE_ACCOUNT_AUTH", ErrMisconfigured)
	}

	return &IdentityResolver{
		store:             store,
		tokens:            tokens,
		apiKeyAuthEnabled: apiKeyAuthEnabled,
	}, nil
}

// BearerToken extracts the token from an Authorization header value. The
// scheme comparison is case-insensitive; any other scheme, or no header,
// yields ok=false rather than an error.
func BearerToken(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// ResolveAccount resolves request credentials to an account. A present
// bearer token is authoritative: if it fails validation the request is
// rejected without consulting the API-key path.
func (r *IdentityResolver) ResolveAccount(ctx context.Context, authorization, apiKey string) (*model.Account, error) {
	if token, ok := BearerToken(authorization); ok {
		return r.resolveToken(ctx, token)
	}
	if apiKey != "" {
		return r.resolveAPIKey(ctx, apiKey)
	}
	return nil, ErrInvalidCredentials
}

// ResolveActiveAccount additionally rejects disabled accounts. The
// distinct disabled error is only reachable once identity is confirmed.
func (r *IdentityResolver) ResolveActiveAccount(ctx context.Context, authorization, apiKey string) (*model.Account, error) {
	account, err := r.ResolveAccount(ctx, authorization, apiKey)
	if err != nil {
		return nil, err
	}
	if account.Disabled {
		return nil, ErrAccountDisabled
	}
	return account, nil
}

func (r *IdentityResolver) resolveToken(ctx context.Context, token string) (*model.Account, error) {
	payload, err := r.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := r.store.GetAccountByEmail(ctx, payload.Subject)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func (r *IdentityResolver) resolveAPIKey(ctx context.Context, apiKey string) (*model.Account, error) {
	if !r.apiKeyAuthEnabled {
		return nil, ErrFeatureDisabled
	}

	account, err := r.store.GetAccountByAPIKeyHash(ctx, HashAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if account == nil || account.AccountType != model.AccountTypeService {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// HashAPIKey maps a raw API key to its stored hash. Keys are stored
// hashed only.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}
