package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/geostack/backend/internal/model"
	"github.com/geostack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const currentAccountKey = "current_account"

// AuthMiddleware resolves the request credentials (bearer token or
// service-account API key) to an active account and stores it in the
// request context.
func AuthMiddleware(resolver *service.IdentityResolver, apiKeyHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		account, err := resolver.ResolveActiveAccount(
			c.Request.Context(),
			c.GetHeader("Authorization"),
			c.GetHeader(apiKeyHeader),
		)
		if err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		c.Set(currentAccountKey, account)
		c.Next()
	}
}

// GetCurrentAccount returns the account resolved by AuthMiddleware, or
// nil outside an authenticated route.
func GetCurrentAccount(c *gin.Context) *model.Account {
	if value, ok := c.Get(currentAccountKey); ok {
		if account, ok := value.(*model.Account); ok {
			return account
		}
	}
	return nil
}

// writeAuthError maps service errors to transport responses. Invalid
// credentials always get the bearer challenge and never say which factor
// failed; a disabled account is a distinct status without the challenge.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
	case errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
	case errors.Is(err, service.ErrFeatureDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "service account auth disabled"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

func CORSMiddleware(allowedOrigins []string, apiKeyHeader string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	allowHeaders := "Authorization, Content-Type"
	if apiKeyHeader != "" {
		allowHeaders += ", " + apiKeyHeader
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", allowHeaders)
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
