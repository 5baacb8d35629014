// Package secrets loads the service credentials from an Infisical-compatible
// vault at startup. The result is an immutable Bundle passed to the components
// that need it; there is no global cache and no runtime refresh path.
package secrets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"jirantetangga/internal/platform/config"
)

// Secret names fetched from the vault. The first four are critical: the
// process refuses to start without them. The Loki pair only disables log
// shipping when absent; LOKI_TOKEN holds the full basic-auth credential,
// "<user-id>:<api-key>" for Grafana Cloud.
const (
	NameMongoURI      = "MONGO_URI"
	NameEncryptionKey = "ENCRYPTION_KEY"
	NameAPIKey        = "API_KEY"
	NameJWTKey        = "JWT_KEY"
	NameLokiHost      = "LOKI_HOST"
	NameLokiToken     = "LOKI_TOKEN"
)

// Bundle is the full set of loaded credentials. Treat as read-only for the
// life of the process.
type Bundle struct {
	MongoURI      string
	EncryptionKey string
	APIKey        string
	JWTKey        string
	LokiHost      string
	LokiToken     string
}

// Complete reports whether every critical secret is present.
func (b Bundle) Complete() bool {
	return b.MongoURI != "" && b.EncryptionKey != "" && b.APIKey != "" && b.JWTKey != ""
}

// Client talks to the vault. The universal-auth login happens at most once;
// concurrent Load calls share the first caller's access token.
type Client struct {
	cfg     config.Vault
	http    *http.Client
	console *slog.Logger

	loginOnce sync.Once
	token     string
	loginErr  error
}

// NewClient builds a vault client from the vault connection parameters.
func NewClient(cfg config.Vault, console *slog.Logger) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 10 * time.Second},
		console: console,
	}
}

// Load authenticates and fetches every named secret. Per-name failures are
// logged as warnings and never raised; the boolean is the only failure
// signal. The caller treats false as fatal.
func (c *Client) Load(ctx context.Context) (Bundle, bool) {
	var b Bundle
	slots := []struct {
		name string
		dst  *string
	}{
		{NameMongoURI, &b.MongoURI},
		{NameEncryptionKey, &b.EncryptionKey},
		{NameAPIKey, &b.APIKey},
		{NameJWTKey, &b.JWTKey},
		{NameLokiHost, &b.LokiHost},
		{NameLokiToken, &b.LokiToken},
	}

	for _, slot := range slots {
		value, err := c.fetch(ctx, slot.name)
		if err != nil {
			c.console.Warn("failed to fetch secret", "name", slot.name, "error", err)
			continue
		}
		*slot.dst = value
	}

	for _, slot := range slots[:4] {
		if *slot.dst == "" {
			c.console.Warn("missing secret", "name", slot.name)
		}
	}
	return b, b.Complete()
}

// login performs the universal-auth machine identity login exactly once.
func (c *Client) login(ctx context.Context) (string, error) {
	c.loginOnce.Do(func() {
		body, _ := json.Marshal(map[string]string{
			"clientId":     c.cfg.ClientID,
			"clientSecret": c.cfg.ClientSecret,
		})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.cfg.Endpoint+"/api/v1/auth/universal-auth/login", bytes.NewReader(body))
		if err != nil {
			c.loginErr = err
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.loginErr = fmt.Errorf("vault login: %w", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			c.loginErr = fmt.Errorf("vault login: unexpected status %d", resp.StatusCode)
			return
		}

		var out struct {
			AccessToken string `json:"accessToken"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			c.loginErr = fmt.Errorf("vault login: decode response: %w", err)
			return
		}
		if out.AccessToken == "" {
			c.loginErr = fmt.Errorf("vault login: empty access token")
			return
		}
		c.token = out.AccessToken
	})
	return c.token, c.loginErr
}

func (c *Client) fetch(ctx context.Context, name string) (string, error) {
	token, err := c.login(ctx)
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/api/v3/secrets/raw/%s?workspaceId=%s&environment=%s&secretPath=%s",
		c.cfg.Endpoint, url.PathEscape(name),
		url.QueryEscape(c.cfg.ProjectID), url.QueryEscape(c.cfg.Environment), url.QueryEscape("/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("fetch %s: status %d: %s", name, resp.StatusCode, body)
	}

	var out struct {
		Secret struct {
			SecretValue string `json:"secretValue"`
		} `json:"secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("fetch %s: decode response: %w", name, err)
	}
	return out.Secret.SecretValue, nil
}

// FromEnv reads the bundle straight from environment variables. Used for
// local/dev runs where no vault identity is configured.
func FromEnv() Bundle {
	return Bundle{
		MongoURI:      os.Getenv(NameMongoURI),
		EncryptionKey: os.Getenv(NameEncryptionKey),
		APIKey:        os.Getenv(NameAPIKey),
		JWTKey:        os.Getenv(NameJWTKey),
		LokiHost:      os.Getenv(NameLokiHost),
		LokiToken:     os.Getenv(NameLokiToken),
	}
}
