// Package config builds the immutable runtime configuration from the
// environment so main stays lean. Secrets never live here; they come from the
// vault at startup (internal/platform/secrets).
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Runtime environments recognized by the service. Anything other than
// production bypasses the credential gate.
const (
	EnvLocal      = "local"
	EnvDev        = "dev"
	EnvProduction = "production"
)

// Auth modes for the credential gate. Exactly one is active per deployment.
const (
	AuthModeAPIKey = "apikey"
	AuthModeToken  = "token"
)

// Vault holds the connection parameters for the external secrets manager.
type Vault struct {
	Endpoint     string
	Environment  string
	ProjectID    string
	ClientID     string
	ClientSecret string
}

// Config captures service-level configuration. It is constructed once at
// startup and passed by reference; nothing mutates it afterwards.
type Config struct {
	Addr         string
	RoutePrepend string
	Version      string
	APIVersion   string
	AppVersion   string
	Env          string
	ServiceName  string
	AuthMode     string
	MongoDBName  string
	Vault        Vault
}

// FromEnv loads an optional .env file and builds the Config. Defaults keep a
// bare local checkout runnable.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Addr:         ":" + envOr("PORT", "3000"),
		RoutePrepend: envOr("ROUTE_PREPEND", "jiran-tetangga"),
		Version:      envOr("VERSION", "v1"),
		APIVersion:   envOr("API_VERSION", "1.0.0"),
		AppVersion:   envOr("APP_VERSION", "1.0.0"),
		Env:          strings.ToLower(envOr("APP_ENV", EnvLocal)),
		ServiceName:  envOr("SERVICE_NAME", "jiran-tetangga"),
		AuthMode:     strings.ToLower(envOr("AUTH_MODE", AuthModeAPIKey)),
		MongoDBName:  envOr("MONGO_DB_NAME", "jiran_tetangga"),
		Vault: Vault{
			Endpoint:     envOr("INFISICAL_URI", "http://localhost:85"),
			Environment:  envOr("INFISICAL_ENV", "dev"),
			ProjectID:    os.Getenv("INFISICAL_PROJECT_ID"),
			ClientID:     os.Getenv("INFISICAL_CLIENT_ID"),
			ClientSecret: os.Getenv("INFISICAL_CLIENT_SECRET"),
		},
	}
}

// BasePath is the configurable prefix plus version segment every resource
// route lives under, e.g. "/jiran-tetangga/v1".
func (c Config) BasePath() string {
	return "/" + c.RoutePrepend + "/" + c.Version
}

// Production reports whether the credential gate is enforced.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// VaultConfigured reports whether vault credentials are present. Without them
// non-production runs fall back to plain environment variables for secrets.
func (c Config) VaultConfigured() bool {
	return c.Vault.ClientID != "" && c.Vault.ClientSecret != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
