package model

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID       int64
	UID      uuid.UUID
	PublicID string

	Name        string
	Description *string
	IsDefault   bool

	// Owner account.
	AccountID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Project struct {
	ID       int64
	UID      uuid.UUID
	PublicID string

	Name        string
	Description *string
	IsDefault   bool

	OrganizationID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrganizationPublic struct {
	UID         uuid.UUID       `json:"uid"`
	PublicID    string          `json:"public_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	IsDefault   bool            `json:"is_default_org"`
	Projects    []ProjectPublic `json:"projects"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProjectPublic struct {
	UID         uuid.UUID `json:"uid"`
	PublicID    string    `json:"public_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsDefault   bool      `json:"is_default_project"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *Organization) Public(projects []ProjectPublic) OrganizationPublic {
	if projects == nil {
		projects = []ProjectPublic{}
	}
	return OrganizationPublic{
		UID:         o.UID,
		PublicID:    o.PublicID,
		Name:        o.Name,
		Description: o.Description,
		IsDefault:   o.IsDefault,
		Projects:    projects,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (p *Project) Public() ProjectPublic {
	return ProjectPublic{
		UID:         p.UID,
		PublicID:    p.PublicID,
		Name:        p.Name,
		Description: p.Description,
		IsDefault:   p.IsDefault,
		CreatedAt:   p.CreatedAt,
	}
}

const publicIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePublicID returns an id like "org-Ab3xK9..." with 16 random characters.
func GeneratePublicID(prefix string) string {
	buf := make([]byte, 16)
	max := big.NewInt(int64(len(publicIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		buf[i] = publicIDAlphabet[n.Int64()]
	}
	return prefix + "-" + string(buf)
}
