package db

import (
	"context"

	"github.com/geostack/backend/internal/model"
	"github.com/google/uuid"
)

func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS account (
			id BIGSERIAL PRIMARY KEY,
			uid UUID NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			hashed_password TEXT,
			disabled BOOLEAN NOT NULL DEFAULT FALSE,
			account_type TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS oauth_account (
			id BIGSERIAL PRIMARY KEY,
			provider TEXT NOT NULL,
			provider_id TEXT NOT NULL,
			email TEXT NOT NULL,
			name TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (provider, provider_id)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS api_keys (
			id BIGSERIAL PRIMARY KEY,
			account_id BIGINT NOT NULL REFERENCES account(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			key_hash TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS organization (
			id BIGSERIAL PRIMARY KEY,
			uid UUID NOT NULL UNIQUE,
			public_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT,
			is_default_org BOOLEAN NOT NULL DEFAULT FALSE,
			account_id BIGINT NOT NULL REFERENCES account(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (account_id, name)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS project (
			id BIGSERIAL PRIMARY KEY,
			uid UUID NOT NULL UNIQUE,
			public_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT,
			is_default_project BOOLEAN NOT NULL DEFAULT FALSE,
			organization_id BIGINT NOT NULL REFERENCES organization(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (organization_id, name)
		)
		`,
		`CREATE INDEX IF NOT EXISTS organization_account_id_idx ON organization(account_id)`,
		`CREATE INDEX IF NOT EXISTS project_organization_id_idx ON project(organization_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const accountColumns = `id, uid, email, hashed_password, disabled, account_type, created_at, updated_at`

func scanAccount(row interface{ Scan(dest ...any) error }) (*model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID,
		&account.UID,
		&account.Email,
		&account.HashedPassword,
		&account.Disabled,
		&account.AccountType,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (db *Postgres) CreateAccount(ctx context.Context, email string, hashedPassword *string, accountType model.AccountType) (*model.Account, error) {
	query := `
		INSERT INTO account (uid, email, hashed_password, account_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + accountColumns
	account, err := scanAccount(db.Pool.QueryRow(ctx, query, uuid.New(), email, hashedPassword, accountType))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByEmail returns (nil, nil) when no account matches.
func (db *Postgres) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE email = $1`
	account, err := scanAccount(db.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func (db *Postgres) GetAccountByUID(ctx context.Context, uid uuid.UUID) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE uid = $1`
	account, err := scanAccount(db.Pool.QueryRow(ctx, query, uid))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByAPIKeyHash resolves a sha256 key hash to its owning account.
func (db *Postgres) GetAccountByAPIKeyHash(ctx context.Context, keyHash string) (*model.Account, error) {
	query := `
		SELECT a.id, a.uid, a.email, a.hashed_password, a.disabled, a.account_type, a.created_at, a.updated_at
		FROM account a
		JOIN api_keys k ON k.account_id = a.id
		WHERE k.key_hash = $1
	`
	account, err := scanAccount(db.Pool.QueryRow(ctx, query, keyHash))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func (db *Postgres) CreateAPIKey(ctx context.Context, accountID int64, name, keyHash string) (*model.APIKey, error) {
	query := `
		INSERT INTO api_keys (account_id, name, key_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, account_id, name, key_hash, created_at
	`
	var key model.APIKey
	err := db.Pool.QueryRow(ctx, query, accountID, name, keyHash).Scan(
		&key.ID,
		&key.AccountID,
		&key.Name,
		&key.KeyHash,
		&key.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &key, nil
}

const oauthAccountColumns = `id, provider, provider_id, email, name, created_at`

func scanOAuthAccount(row interface{ Scan(dest ...any) error }) (*model.OAuthAccount, error) {
	var oa model.OAuthAccount
	err := row.Scan(
		&oa.ID,
		&oa.Provider,
		&oa.ProviderID,
		&oa.Email,
		&oa.Name,
		&oa.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &oa, nil
}

// GetOAuthAccountByProviderID returns (nil, nil) when the
// (provider, provider_id) pair has no mapping.
func (db *Postgres) GetOAuthAccountByProviderID(ctx context.Context, provider, providerID string) (*model.OAuthAccount, error) {
	query := `
		SELECT ` + oauthAccountColumns + `
		FROM oauth_account
		WHERE provider = $1 AND provider_id = $2
	`
	oa, err := scanOAuthAccount(db.Pool.QueryRow(ctx, query, provider, providerID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return oa, nil
}

func (db *Postgres) CreateOAuthAccount(ctx context.Context, provider, providerID, email string, name *string) (*model.OAuthAccount, error) {
	query := `
		INSERT INTO oauth_account (provider, provider_id, email, name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + oauthAccountColumns
	oa, err := scanOAuthAccount(db.Pool.QueryRow(ctx, query, provider, providerID, email, name))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return oa, nil
}
