package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/geostack/backend/internal/db"
	"github.com/geostack/backend/internal/model"
)

const (
	defaultOrgName     = "Default Organization"
	defaultProjectName = "Default Project"
)

// AccountStore is the store slice for registration and profile reads.
type AccountStore interface {
	CreateAccount(ctx context.Context, email string, hashedPassword *string, accountType model.AccountType) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	CreateOrganization(ctx context.Context, accountID int64, name string, description *string, isDefault bool) (*model.Organization, error)
	CreateProject(ctx context.Context, organizationID int64, name string, description *string, isDefault bool) (*model.Project, error)
	ListOrganizationsByAccountID(ctx context.Context, accountID int64) ([]model.Organization, error)
	ListProjectsByOrganizationID(ctx context.Context, organizationID int64) ([]model.Project, error)
	GetOrganizationByPublicID(ctx context.Context, publicID string) (*model.Organization, error)
}

type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// Register creates a user account plus its default organization and
// project. A duplicate email fails with ErrConflict.
func (s *AccountService) Register(ctx context.Context, email, password string) (*model.Account, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	account, err := s.store.CreateAccount(ctx, email, &hash, model.AccountTypeUser)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	org, err := s.store.CreateOrganization(ctx, account.ID, defaultOrgName, nil, true)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.CreateProject(ctx, org.ID, defaultProjectName, nil, true); err != nil {
		return nil, err
	}

	return account, nil
}

// Profile assembles the /accounts/me response: the account with its
// organizations and their projects.
func (s *AccountService) Profile(ctx context.Context, account *model.Account) (*model.AccountProfileMe, error) {
	orgs, err := s.store.ListOrganizationsByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	publicOrgs := make([]model.OrganizationPublic, 0, len(orgs))
	for i := range orgs {
		org, err := s.publicOrganization(ctx, &orgs[i])
		if err != nil {
			return nil, err
		}
		publicOrgs = append(publicOrgs, org)
	}

	return &model.AccountProfileMe{
		UID:           account.UID,
		Email:         account.Email,
		Disabled:      account.Disabled,
		AccountType:   account.AccountType,
		Organizations: publicOrgs,
	}, nil
}

// Organizations lists the organizations owned by the account.
func (s *AccountService) Organizations(ctx context.Context, account *model.Account) ([]model.OrganizationPublic, error) {
	orgs, err := s.store.ListOrganizationsByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	publicOrgs := make([]model.OrganizationPublic, 0, len(orgs))
	for i := range orgs {
		org, err := s.publicOrganization(ctx, &orgs[i])
		if err != nil {
			return nil, err
		}
		publicOrgs = append(publicOrgs, org)
	}
	return publicOrgs, nil
}

// OrganizationProjects lists the projects of one organization, restricted
// to the owning account. A missing org and a foreign org are
// indistinguishable to the caller.
func (s *AccountService) OrganizationProjects(ctx context.Context, account *model.Account, publicID string) ([]model.ProjectPublic, error) {
	org, err := s.store.GetOrganizationByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if org == nil || org.AccountID != account.ID {
		return nil, ErrNotFound
	}

	projects, err := s.store.ListProjectsByOrganizationID(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	publicProjects := make([]model.ProjectPublic, 0, len(projects))
	for i := range projects {
		publicProjects = append(publicProjects, projects[i].Public())
	}
	return publicProjects, nil
}

func (s *AccountService) publicOrganization(ctx context.Context, org *model.Organization) (model.OrganizationPublic, error) {
	projects, err := s.store.ListProjectsByOrganizationID(ctx, org.ID)
	if err != nil {
		return model.OrganizationPublic{}, err
	}
	publicProjects := make([]model.ProjectPublic, 0, len(projects))
	for i := range projects {
		publicProjects = append(publicProjects, projects[i].Public())
	}
	return org.Public(publicProjects), nil
}

// ValidatePassword enforces the registration password policy: at least 8
// characters with an upper-case letter, a lower-case letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("%w: password must contain an uppercase letter", ErrInvalidInput)
	}
	if !hasLower {
		return fmt.Errorf("%w: password must contain a lowercase letter", ErrInvalidInput)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain a number", ErrInvalidInput)
	}
	return nil
}
