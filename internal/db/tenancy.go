package db

import (
	"context"

	"github.com/geostack/backend/internal/model"
	"github.com/google/uuid"
)

const organizationColumns = `id, uid, public_id, name, description, is_default_org, account_id, created_at, updated_at`

func scanOrganization(row interface{ Scan(dest ...any) error }) (*model.Organization, error) {
	var org model.Organization
	err := row.Scan(
		&org.ID,
		&org.UID,
		&org.PublicID,
		&org.Name,
		&org.Description,
		&org.IsDefault,
		&org.AccountID,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (db *Postgres) CreateOrganization(ctx context.Context, accountID int64, name string, description *string, isDefault bool) (*model.Organization, error) {
	query := `
		INSERT INTO organization (uid, public_id, name, description, is_default_org, account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + organizationColumns
	org, err := scanOrganization(db.Pool.QueryRow(ctx, query,
		uuid.New(), model.GeneratePublicID("org"), name, description, isDefault, accountID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return org, nil
}

// GetOrganizationByPublicID returns (nil, nil) when no organization matches.
func (db *Postgres) GetOrganizationByPublicID(ctx context.Context, publicID string) (*model.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organization WHERE public_id = $1`
	org, err := scanOrganization(db.Pool.QueryRow(ctx, query, publicID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

func (db *Postgres) ListOrganizationsByAccountID(ctx context.Context, accountID int64) ([]model.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organization
		WHERE account_id = $1
		ORDER BY created_at ASC
	`
	rows, err := db.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []model.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}
	return orgs, rows.Err()
}

const projectColumns = `id, uid, public_id, name, description, is_default_project, organization_id, created_at, updated_at`

func scanProject(row interface{ Scan(dest ...any) error }) (*model.Project, error) {
	var project model.Project
	err := row.Scan(
		&project.ID,
		&project.UID,
		&project.PublicID,
		&project.Name,
		&project.Description,
		&project.IsDefault,
		&project.OrganizationID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (db *Postgres) CreateProject(ctx context.Context, organizationID int64, name string, description *string, isDefault bool) (*model.Project, error) {
	query := `
		INSERT INTO project (uid, public_id, name, description, is_default_project, organization_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + projectColumns
	project, err := scanProject(db.Pool.QueryRow(ctx, query,
		uuid.New(), model.GeneratePublicID("project"), name, description, isDefault, organizationID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return project, nil
}

func (db *Postgres) ListProjectsByOrganizationID(ctx context.Context, organizationID int64) ([]model.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM project
		WHERE organization_id = $1
		ORDER BY created_at ASC
	`
	rows, err := db.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}
