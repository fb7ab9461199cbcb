package service

import (
	"context"
	"errors"
	"log"

	"github.com/geostack/backend/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrFeatureDisabled    = errors.New("feature disabled")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMisconfigured      = errors.New("auth config invalid")
)

// AccountGetter is the slice of the account store the authentication
// service depends on. Lookups return (nil, nil) when nothing matches.
type AccountGetter interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}

type AuthService struct {
	store  AccountGetter
	tokens *TokenService
}

func NewAuthService(store AccountGetter, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Authenticate resolves email+password to an account. It returns
// (nil, nil) for an unknown email and for a wrong password alike; callers
// cannot tell which factor failed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	if !VerifyPassword(password, account.HashedPassword) {
		return nil, nil
	}
	return account, nil
}

// Login exchanges credentials for a bearer token. The disabled-flag check
// runs strictly after credential verification so that callers without
// valid credentials cannot probe account status.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Token, error) {
	account, err := s.Authenticate(ctx, email, password)
	if err != nil {
		log.Printf("[Auth] authenticate failed: %v", err)
		return model.Token{}, err
	}
	if account == nil {
		return model.Token{}, ErrInvalidCredentials
	}
	if account.Disabled {
		return model.Token{}, ErrAccountDisabled
	}
	return s.tokens.CreateAccessToken(account)
}
