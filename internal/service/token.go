package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/geostack/backend/internal/config"
	"github.com/geostack/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeBearer = "bearer"

var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
)

// TokenService issues and verifies HS256-signed access tokens. The secret
// and TTL are fixed at construction; rotation is not supported.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

type accessClaims struct {
	// Set only on OAuth-derived tokens.
	OAuthAccountID int64  `json:"id,omitempty"`
	Provider       string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}

// TokenPayload is the verified content of an access token.
type TokenPayload struct {
	Subject        string
	OAuthAccountID int64
	Provider       string
	ExpiresAt      time.Time
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &TokenService{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: accessTTL,
	}, nil
}

// CreateAccessToken mints a bearer token whose subject is the account email.
func (s *TokenService) CreateAccessToken(account *model.Account) (model.Token, error) {
	return s.createToken(accessClaims{}, account.Email)
}

// CreateOAuthAccessToken additionally embeds the oauth-account id and the
// provider name in the claims.
func (s *TokenService) CreateOAuthAccessToken(oauthAccount *model.OAuthAccount) (model.Token, error) {
	return s.createToken(accessClaims{
		OAuthAccountID: oauthAccount.ID,
		Provider:       oauthAccount.Provider,
	}, oauthAccount.Email)
}

func (s *TokenService) createToken(claims accessClaims, subject string) (model.Token, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return model.Token{}, err
	}
	return model.Token{AccessToken: signed, TokenType: tokenTypeBearer}, nil
}

// VerifyAccessToken decodes and verifies a raw token string. Expiration is
// re-checked after the parse; the jwt library validates it too, but the
// payload must never be trusted on that alone.
func (s *TokenService) VerifyAccessToken(raw string) (*TokenPayload, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenInvalidSignature):
			return nil, ErrTokenInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	if claims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}
	if time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return &TokenPayload{
		Subject:        claims.Subject,
		OAuthAccountID: claims.OAuthAccountID,
		Provider:       claims.Provider,
		ExpiresAt:      claims.ExpiresAt.Time,
	}, nil
}
