package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/geostack/backend/internal/config"
	"github.com/geostack/backend/internal/db"
	"github.com/geostack/backend/internal/handler"
	"github.com/geostack/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file loaded: %v", err)
	}
	cfg := config.Load()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("[Main] postgres init failed: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("[Main] schema init failed: %v", err)
	}

	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatalf("[Main] token service init failed: %v", err)
	}

	resolver, err := service.NewIdentityResolver(store, tokens, cfg.Auth)
	if err != nil {
		log.Fatalf("[Main] identity resolver init failed: %v", err)
	}

	oauthSvc, err := service.NewOAuthService(ctx, store, tokens, cfg.OAuth)
	if err != nil {
		log.Fatalf("[Main] oauth service init failed: %v", err)
	}

	authSvc := service.NewAuthService(store, tokens)
	accountSvc := service.NewAccountService(store)

	authHandler := handler.NewAuthHandler(authSvc)
	oauthHandler := handler.NewOAuthHandler(oauthSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	tenancyHandler := handler.NewTenancyHandler(accountSvc)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(strings.Split(cfg.CORS.AllowedOrigins, ","), cfg.Auth.APIKeyHeader))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/google/login", oauthHandler.GoogleLogin)
	v1.GET("/auth/google/callback", oauthHandler.GoogleCallback)
	v1.POST("/accounts", accountHandler.Register)

	authed := v1.Group("")
	authed.Use(handler.AuthMiddleware(resolver, cfg.Auth.APIKeyHeader))
	authed.GET("/accounts/me", accountHandler.Me)
	authed.GET("/organizations", tenancyHandler.ListOrganizations)
	authed.GET("/organizations/:publicID/projects", tenancyHandler.ListProjects)

	log.Printf("[Main] listening on %s", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("[Main] server stopped: %v", err)
	}
}
