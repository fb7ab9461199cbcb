package config

import "os"

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
	Postgres PostgresConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Addr      string
	BrandName string
}

type AuthConfig struct {
	JWTSecret string
	// Access-token lifetime as a time.Duration string, e.g. "30m".
	JWTAccessTTL string
	// Request header carrying the service-account API key.
	APIKeyHeader string
	// Gates the API-key authentication path.
	EnableServiceAccountAuth string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type CORSConfig struct {
	AllowedOrigins string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:      getenv("LISTEN_ADDR", ":8080"),
			BrandName: getenv("BRAND_NAME", "GeoStack"),
		},
		Auth: AuthConfig{
			JWTSecret:                os.Getenv("JWT_SECRET"),
			JWTAccessTTL:             getenv("JWT_ACCESS_TTL", "30m"),
			APIKeyHeader:             getenv("API_KEY_HEADER", "X-API-Key"),
			EnableServiceAccountAuth: os.Getenv("ENABLE_SERVICE_ACCOUNT_AUTH"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
