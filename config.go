package authx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/oauth2"
)

const (
	defaultExpiryBuffer  = 5 * time.Minute
	defaultHTTPTimeout   = 10 * time.Second
	defaultUsernameClaim = "cognito:username"
	defaultGroupsClaim   = "cognito:groups"
)

var defaultScopes = []string{"openid", "email", "profile"}

// Config describes the hosted-UI endpoints and client registration used by
// the session manager.
type Config struct {
	// AuthBaseURL is the hosted-UI origin, e.g. https://auth.example.com.
	// Login, logout, token, and user-info URLs derive from it unless set
	// explicitly.
	AuthBaseURL string

	TokenURL    string
	UserInfoURL string

	ClientID          string
	RedirectURI       string
	LogoutRedirectURI string
	Scopes            []string

	// UsernameClaim and GroupsClaim name the provider-specific claims the
	// profile projection reads. Defaults match Cognito user pools.
	UsernameClaim string
	GroupsClaim   string

	// ExpiryBuffer is subtracted from the token expiry so a session reads
	// as expired slightly before the token actually lapses.
	ExpiryBuffer time.Duration

	HTTPTimeout time.Duration
}

// normalize sets default values for optional fields.
func (c *Config) normalize() {
	base := strings.TrimRight(c.AuthBaseURL, "/")
	c.AuthBaseURL = base
	if c.TokenURL == "" {
		c.TokenURL = base + "/oauth2/token"
	}
	if c.UserInfoURL == "" {
		c.UserInfoURL = base + "/oauth2/userInfo"
	}
	if c.LogoutRedirectURI == "" {
		c.LogoutRedirectURI = c.RedirectURI
	}
	if len(c.Scopes) == 0 {
		c.Scopes = append([]string(nil), defaultScopes...)
	}
	if c.UsernameClaim == "" {
		c.UsernameClaim = defaultUsernameClaim
	}
	if c.GroupsClaim == "" {
		c.GroupsClaim = defaultGroupsClaim
	}
	if c.ExpiryBuffer <= 0 {
		c.ExpiryBuffer = defaultExpiryBuffer
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
}

// validate ensures the configuration is usable.
func (c Config) validate() error {
	switch {
	case c.AuthBaseURL == "":
		return errors.New("auth base URL is required")
	case c.ClientID == "":
		return errors.New("client id is required")
	case c.RedirectURI == "":
		return errors.New("redirect URI is required")
	}
	return nil
}

// oauth2Config builds the exchange configuration for this public client.
// AuthStyleInParams keeps the client id in the form body; hosted-UI token
// endpoints reject basic auth for clients registered without a secret.
func (c Config) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:    c.ClientID,
		RedirectURL: c.RedirectURI,
		Scopes:      append([]string(nil), c.Scopes...),
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthBaseURL + "/login",
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// configEnv holds raw env values for the session configuration.
type configEnv struct {
	AuthBaseURL       string        `env:"AUTHX_AUTH_BASE_URL"`
	TokenURL          string        `env:"AUTHX_TOKEN_URL"`
	UserInfoURL       string        `env:"AUTHX_USERINFO_URL"`
	ClientID          string        `env:"AUTHX_CLIENT_ID"`
	RedirectURI       string        `env:"AUTHX_REDIRECT_URI"`
	LogoutRedirectURI string        `env:"AUTHX_LOGOUT_REDIRECT_URI"`
	Scopes            []string      `env:"AUTHX_SCOPES"        envSeparator:" "`
	UsernameClaim     string        `env:"AUTHX_USERNAME_CLAIM"`
	GroupsClaim       string        `env:"AUTHX_GROUPS_CLAIM"`
	ExpiryBuffer      time.Duration `env:"AUTHX_EXPIRY_BUFFER" envDefault:"5m"`
	HTTPTimeout       time.Duration `env:"AUTHX_HTTP_TIMEOUT"  envDefault:"10s"`
}

// ConfigFromEnv loads the session configuration from AUTHX_* environment
// variables. Scopes are space-separated, matching the wire format.
func ConfigFromEnv() (Config, error) {
	var raw configEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return Config{
		AuthBaseURL:       raw.AuthBaseURL,
		TokenURL:          raw.TokenURL,
		UserInfoURL:       raw.UserInfoURL,
		ClientID:          raw.ClientID,
		RedirectURI:       raw.RedirectURI,
		LogoutRedirectURI: raw.LogoutRedirectURI,
		Scopes:            trimScopes(raw.Scopes),
		UsernameClaim:     raw.UsernameClaim,
		GroupsClaim:       raw.GroupsClaim,
		ExpiryBuffer:      raw.ExpiryBuffer,
		HTTPTimeout:       raw.HTTPTimeout,
	}, nil
}

// trimScopes removes empty entries from a split scope list.
func trimScopes(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
