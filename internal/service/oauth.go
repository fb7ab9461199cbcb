package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/geostack/backend/internal/config"
	"github.com/geostack/backend/internal/db"
	"github.com/geostack/backend/internal/model"
	"golang.org/x/oauth2"
)

const googleIssuer = "https://accounts.google.com"

// OAuthStore is the store slice the OAuth linker needs. Lookups return
// (nil, nil) when nothing matches; creates return db.ErrDuplicateKey on a
// uniqueness conflict.
type OAuthStore interface {
	GetOAuthAccountByProviderID(ctx context.Context, provider, providerID string) (*model.OAuthAccount, error)
	CreateOAuthAccount(ctx context.Context, provider, providerID, email string, name *string) (*model.OAuthAccount, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	CreateAccount(ctx context.Context, email string, hashedPassword *string, accountType model.AccountType) (*model.Account, error)
}

// OAuthService links third-party identities to local accounts and mints
// bearer tokens for them.
type OAuthService struct {
	store  OAuthStore
	tokens *TokenService

	google   *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

func NewOAuthService(ctx context.Context, store OAuthStore, tokens *TokenService, cfg config.OAuthConfig) (*OAuthService, error) {
	svc := &OAuthService{store: store, tokens: tokens}

	if cfg.GoogleClientID != "" {
		provider, err := oidc.NewProvider(ctx, googleIssuer)
		if err != nil {
			return nil, fmt.Errorf("failed to discover google oidc provider: %w", err)
		}
		svc.google = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		}
		svc.verifier = provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID})
	}

	return svc, nil
}

func (s *OAuthService) GetOAuthAccountByProviderID(ctx context.Context, provider, providerID string) (*model.OAuthAccount, error) {
	return s.store.GetOAuthAccountByProviderID(ctx, provider, providerID)
}

// CreateOAuthAccount inserts a new mapping. It is not idempotent: a
// duplicate (provider, provider_id) pair fails with ErrConflict.
func (s *OAuthService) CreateOAuthAccount(ctx context.Context, provider, providerID, email string, name *string) (*model.OAuthAccount, error) {
	oa, err := s.store.CreateOAuthAccount(ctx, provider, providerID, email, name)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return oa, nil
}

// GetOrCreateOAuthAccount looks the mapping up and creates it if absent.
// Two concurrent first logins can both see "absent"; the losing insert
// hits the unique constraint and the lookup is re-run once.
func (s *OAuthService) GetOrCreateOAuthAccount(ctx context.Context, provider, providerID, email string, name *string) (*model.OAuthAccount, error) {
	oa, err := s.store.GetOAuthAccountByProviderID(ctx, provider, providerID)
	if err != nil {
		return nil, err
	}
	if oa != nil {
		return oa, nil
	}

	oa, err = s.CreateOAuthAccount(ctx, provider, providerID, email, name)
	if err == nil {
		return oa, nil
	}
	if !errors.Is(err, ErrConflict) {
		return nil, err
	}

	oa, err = s.store.GetOAuthAccountByProviderID(ctx, provider, providerID)
	if err != nil {
		return nil, err
	}
	if oa == nil {
		return nil, ErrConflict
	}
	return oa, nil
}

// CreateOAuthToken mints a bearer token for a linked identity, embedding
// the oauth-account id and provider name in the claims.
func (s *OAuthService) CreateOAuthToken(oauthAccount *model.OAuthAccount) (model.Token, error) {
	return s.tokens.CreateOAuthAccessToken(oauthAccount)
}

// GoogleEnabled reports whether the Google login flow is configured.
func (s *OAuthService) GoogleEnabled() bool {
	return s.google != nil
}

func (s *OAuthService) GoogleLoginURL(state string) string {
	return s.google.AuthCodeURL(state)
}

type googleIDClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback exchanges the authorization code, verifies the ID token,
// links the identity to a local account and returns a bearer token.
func (s *OAuthService) GoogleCallback(ctx context.Context, code string) (model.Token, error) {
	if !s.GoogleEnabled() {
		return model.Token{}, ErrFeatureDisabled
	}

	oauthToken, err := s.google.Exchange(ctx, code)
	if err != nil {
		return model.Token{}, ErrInvalidCredentials
	}

	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok {
		return model.Token{}, ErrInvalidCredentials
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return model.Token{}, ErrInvalidCredentials
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return model.Token{}, ErrInvalidCredentials
	}
	if claims.Sub == "" || claims.Email == "" {
		return model.Token{}, ErrInvalidCredentials
	}

	var name *string
	if claims.Name != "" {
		name = &claims.Name
	}

	oa, err := s.GetOrCreateOAuthAccount(ctx, "google", claims.Sub, claims.Email, name)
	if err != nil {
		return model.Token{}, err
	}

	if err := s.ensureAccount(ctx, oa.Email); err != nil {
		return model.Token{}, err
	}

	return s.CreateOAuthToken(oa)
}

// ensureAccount creates the local account for an OAuth identity on first
// login. The account carries no password.
func (s *OAuthService) ensureAccount(ctx context.Context, email string) error {
	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account != nil {
		return nil
	}

	_, err = s.store.CreateAccount(ctx, email, nil, model.AccountTypeUser)
	if errors.Is(err, db.ErrDuplicateKey) {
		// Lost a concurrent first-login race; the account exists now.
		return nil
	}
	return err
}

// RandomState returns a CSRF state value for the OAuth redirect round-trip.
func RandomState() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
