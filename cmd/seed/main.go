// Demo-data loader. Creates a couple of user accounts with their default
// organization/project, a disabled account, a service account with an API
// key, and one OAuth link. Safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/geostack/backend/internal/config"
	"github.com/geostack/backend/internal/db"
	"github.com/geostack/backend/internal/model"
	"github.com/geostack/backend/internal/service"
)

type demoAccount struct {
	email       string
	password    string
	accountType model.AccountType
	disabled    bool
}

var demoAccounts = []demoAccount{
	{email: "alice@example.com", password: "Passw0rd!", accountType: model.AccountTypeUser},
	{email: "bob@example.com", password: "Passw0rd!", accountType: model.AccountTypeUser},
	{email: "carol@example.com", password: "Passw0rd!", accountType: model.AccountTypeUser, disabled: true},
	{email: "pipeline@example.com", accountType: model.AccountTypeService},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Seed] no .env file loaded: %v", err)
	}
	cfg := config.Load()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("[Seed] postgres init failed: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("[Seed] schema init failed: %v", err)
	}

	for _, demo := range demoAccounts {
		if err := seedAccount(ctx, store, demo); err != nil {
			log.Fatalf("[Seed] failed to seed %s: %v", demo.email, err)
		}
	}

	if err := seedOAuthLink(ctx, store); err != nil {
		log.Fatalf("[Seed] failed to seed oauth link: %v", err)
	}

	log.Printf("[Seed] done")
}

func seedAccount(ctx context.Context, store *db.Postgres, demo demoAccount) error {
	existing, err := store.GetAccountByEmail(ctx, demo.email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("[Seed] %s already registered", demo.email)
		return nil
	}

	var hash *string
	if demo.password != "" {
		h, err := service.HashPassword(demo.password)
		if err != nil {
			return err
		}
		hash = &h
	}

	account, err := store.CreateAccount(ctx, demo.email, hash, demo.accountType)
	if err != nil {
		return err
	}
	if demo.disabled {
		if _, err := store.Pool.Exec(ctx, `UPDATE account SET disabled = TRUE WHERE id = $1`, account.ID); err != nil {
			return err
		}
	}

	org, err := store.CreateOrganization(ctx, account.ID, "Default Organization", nil, true)
	if err != nil {
		return err
	}
	if _, err := store.CreateProject(ctx, org.ID, "Default Project", nil, true); err != nil {
		return err
	}

	rawKey := "ak_" + uuid.NewString()
	if _, err := store.CreateAPIKey(ctx, account.ID, "default", service.HashAPIKey(rawKey)); err != nil {
		return err
	}
	// The raw key is only recoverable here.
	log.Printf("[Seed] created %s (api key: %s)", demo.email, rawKey)

	return nil
}

func seedOAuthLink(ctx context.Context, store *db.Postgres) error {
	name := "Alice Example"
	oa, err := store.CreateOAuthAccount(ctx, "google", "demo-google-sub-alice", "alice@example.com", &name)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			log.Printf("[Seed] oauth link already exists")
			return nil
		}
		return err
	}
	log.Printf("[Seed] created oauth link %s/%s", oa.Provider, oa.ProviderID)
	return nil
}
