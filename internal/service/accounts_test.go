package service

import (
	"context"
	"errors"
	"testing"

	"github.com/geostack/backend/internal/model"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Passw0rd!"},
		{name: "too-short", password: "Pw0rd!", wantErr: true},
		{name: "no-uppercase", password: "passw0rd!", wantErr: true},
		{name: "no-lowercase", password: "PASSW0RD!", wantErr: true},
		{name: "no-digit", password: "Password!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ValidatePassword() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidatePassword() error = %v", err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountService(store)

	account, err := svc.Register(context.Background(), "alice@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if account.AccountType != model.AccountTypeUser {
		t.Fatalf("account type = %q, want user", account.AccountType)
	}
	if !VerifyPassword("Passw0rd!", account.HashedPassword) {
		t.Fatalf("stored hash does not verify the registration password")
	}

	orgs, err := store.ListOrganizationsByAccountID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("ListOrganizationsByAccountID() error = %v", err)
	}
	if len(orgs) != 1 || !orgs[0].IsDefault {
		t.Fatalf("expected one default organization, got %+v", orgs)
	}
	projects, err := store.ListProjectsByOrganizationID(context.Background(), orgs[0].ID)
	if err != nil {
		t.Fatalf("ListProjectsByOrganizationID() error = %v", err)
	}
	if len(projects) != 1 || !projects[0].IsDefault {
		t.Fatalf("expected one default project, got %+v", projects)
	}

	if _, err := svc.Register(context.Background(), "alice@example.com", "Passw0rd!"); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate Register() error = %v, want ErrConflict", err)
	}

	if _, err := svc.Register(context.Background(), "bob@example.com", "weak"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("weak-password Register() error = %v, want ErrInvalidInput", err)
	}
}

func TestOrganizationProjectsOwnership(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountService(store)

	alice, err := svc.Register(context.Background(), "alice@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	bob, err := svc.Register(context.Background(), "bob@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	aliceOrgs, err := svc.Organizations(context.Background(), alice)
	if err != nil {
		t.Fatalf("Organizations() error = %v", err)
	}
	if len(aliceOrgs) != 1 {
		t.Fatalf("organizations = %d, want 1", len(aliceOrgs))
	}

	projects, err := svc.OrganizationProjects(context.Background(), alice, aliceOrgs[0].PublicID)
	if err != nil {
		t.Fatalf("OrganizationProjects() error = %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(projects))
	}

	// A foreign org and a missing org look the same to the caller.
	if _, err := svc.OrganizationProjects(context.Background(), bob, aliceOrgs[0].PublicID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign org error = %v, want ErrNotFound", err)
	}
	if _, err := svc.OrganizationProjects(context.Background(), bob, "org-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing org error = %v, want ErrNotFound", err)
	}
}

func TestProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountService(store)

	alice, err := svc.Register(context.Background(), "alice@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	profile, err := svc.Profile(context.Background(), alice)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.Email != "alice@example.com" {
		t.Fatalf("profile email = %q", profile.Email)
	}
	if len(profile.Organizations) != 1 || len(profile.Organizations[0].Projects) != 1 {
		t.Fatalf("expected default org with default project, got %+v", profile.Organizations)
	}
}
