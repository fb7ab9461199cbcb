package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/geostack/backend/internal/config"
	"github.com/geostack/backend/internal/db"
	"github.com/geostack/backend/internal/model"
	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for db.Postgres used across the
// service tests.
type fakeStore struct {
	mu sync.Mutex

	accounts      map[string]*model.Account
	apiKeys       map[string]string // key hash -> account email
	oauthAccounts map[string]*model.OAuthAccount
	orgs          []model.Organization
	projects      []model.Project
	nextID        int64

	// Optional hooks for fault injection.
	createOAuthAccountErr error
	createAccountErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:      map[string]*model.Account{},
		apiKeys:       map[string]string{},
		oauthAccounts: map[string]*model.OAuthAccount{},
	}
}

func (f *fakeStore) addAccount(email string, password string, accountType model.AccountType, disabled bool) *model.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	account := &model.Account{
		ID:          f.nextID,
		UID:         uuid.New(),
		Email:       email,
		Disabled:    disabled,
		AccountType: accountType,
	}
	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			panic(err)
		}
		account.HashedPassword = &hash
	}
	f.accounts[email] = account
	return account
}

func (f *fakeStore) addAPIKey(email, rawKey string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apiKeys[HashAPIKey(rawKey)] = email
}

func (f *fakeStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[email], nil
}

func (f *fakeStore) GetAccountByAPIKeyHash(ctx context.Context, keyHash string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.apiKeys[keyHash]
	if !ok {
		return nil, nil
	}
	return f.accounts[email], nil
}

func (f *fakeStore) CreateAccount(ctx context.Context, email string, hashedPassword *string, accountType model.AccountType) (*model.Account, error) {
	if f.createAccountErr != nil {
		return nil, f.createAccountErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[email]; exists {
		return nil, db.ErrDuplicateKey
	}
	f.nextID++
	account := &model.Account{
		ID:             f.nextID,
		UID:            uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		AccountType:    accountType,
	}
	f.accounts[email] = account
	return account, nil
}

func oauthKey(provider, providerID string) string {
	return provider + "/" + providerID
}

func (f *fakeStore) GetOAuthAccountByProviderID(ctx context.Context, provider, providerID string) (*model.OAuthAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.oauthAccounts[oauthKey(provider, providerID)], nil
}

func (f *fakeStore) CreateOAuthAccount(ctx context.Context, provider, providerID, email string, name *string) (*model.OAuthAccount, error) {
	if f.createOAuthAccountErr != nil {
		return nil, f.createOAuthAccountErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := oauthKey(provider, providerID)
	if _, exists := f.oauthAccounts[key]; exists {
		return nil, db.ErrDuplicateKey
	}
	f.nextID++
	oa := &model.OAuthAccount{
		ID:         f.nextID,
		Provider:   provider,
		ProviderID: providerID,
		Email:      email,
		Name:       name,
	}
	f.oauthAccounts[key] = oa
	return oa, nil
}

func (f *fakeStore) CreateOrganization(ctx context.Context, accountID int64, name string, description *string, isDefault bool) (*model.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, org := range f.orgs {
		if org.AccountID == accountID && org.Name == name {
			return nil, db.ErrDuplicateKey
		}
	}
	f.nextID++
	org := model.Organization{
		ID:          f.nextID,
		UID:         uuid.New(),
		PublicID:    fmt.Sprintf("org-fake%d", f.nextID),
		Name:        name,
		Description: description,
		IsDefault:   isDefault,
		AccountID:   accountID,
	}
	f.orgs = append(f.orgs, org)
	return &org, nil
}

func (f *fakeStore) CreateProject(ctx context.Context, organizationID int64, name string, description *string, isDefault bool) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	project := model.Project{
		ID:             f.nextID,
		UID:            uuid.New(),
		PublicID:       fmt.Sprintf("project-fake%d", f.nextID),
		Name:           name,
		Description:    description,
		IsDefault:      isDefault,
		OrganizationID: organizationID,
	}
	f.projects = append(f.projects, project)
	return &project, nil
}

func (f *fakeStore) ListOrganizationsByAccountID(ctx context.Context, accountID int64) ([]model.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orgs := []model.Organization{}
	for _, org := range f.orgs {
		if org.AccountID == accountID {
			orgs = append(orgs, org)
		}
	}
	return orgs, nil
}

func (f *fakeStore) ListProjectsByOrganizationID(ctx context.Context, organizationID int64) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	projects := []model.Project{}
	for _, project := range f.projects {
		if project.OrganizationID == organizationID {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (f *fakeStore) GetOrganizationByPublicID(ctx context.Context, publicID string) (*model.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orgs {
		if f.orgs[i].PublicID == publicID {
			return &f.orgs[i], nil
		}
	}
	return nil, nil
}

func testAuthConfig(secret, ttl string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:    secret,
		JWTAccessTTL: ttl,
		APIKeyHeader: "X-API-Key",
	}
}

// testOAuthConfig leaves Google unconfigured so construction stays
// offline; the linker methods do not need the provider.
func testOAuthConfig() config.OAuthConfig {
	return config.OAuthConfig{}
}

func newTestTokenService(secret, ttl string) *TokenService {
	svc, err := NewTokenService(testAuthConfig(secret, ttl))
	if err != nil {
		panic(err)
	}
	return svc
}
