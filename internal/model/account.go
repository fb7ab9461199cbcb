package model

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeUser    AccountType = "user"
	AccountTypeService AccountType = "service-account"
)

type Account struct {
	ID  int64
	UID uuid.UUID

	Email string
	// Nil for externally-authenticated accounts and service accounts.
	HashedPassword *string
	Disabled       bool
	AccountType    AccountType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OAuthAccount links one third-party identity to a local account.
// The (provider, provider_id) pair is unique.
type OAuthAccount struct {
	ID         int64
	Provider   string
	ProviderID string
	Email      string
	Name       *string
	CreatedAt  time.Time
}

type APIKey struct {
	ID        int64
	AccountID int64
	Name      string
	KeyHash   string
	CreatedAt time.Time
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token is the login response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AccountPublic struct {
	UID         uuid.UUID   `json:"uid"`
	Email       string      `json:"email"`
	Disabled    bool        `json:"disabled"`
	AccountType AccountType `json:"account_type"`
	CreatedAt   time.Time   `json:"created_at"`
}

// AccountProfileMe is the /accounts/me response shape.
type AccountProfileMe struct {
	UID           uuid.UUID            `json:"uid"`
	Email         string               `json:"email"`
	Disabled      bool                 `json:"disabled"`
	AccountType   AccountType          `json:"account_type"`
	Organizations []OrganizationPublic `json:"organizations"`
}

func (a *Account) Public() AccountPublic {
	return AccountPublic{
		UID:         a.UID,
		Email:       a.Email,
		Disabled:    a.Disabled,
		AccountType: a.AccountType,
		CreatedAt:   a.CreatedAt,
	}
}
