// Package config loads process configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultAppFolder is the Drive folder provisioned for this application when
// APP_FOLDER is not set. The unusual name keeps it from colliding with
// user-created folders.
const DefaultAppFolder = "_@!md-viewer!@_"

// oauthScopes are requested during login. Full drive scope is required to
// create and edit documents in the app folder.
var oauthScopes = []string{
	"openid",
	"email",
	"profile",
	"https://www.googleapis.com/auth/drive",
}

// Config holds everything the process needs: the OAuth2 client credentials,
// the listen address, and the app folder display name. Immutable after Load.
type Config struct {
	ClientID     string `env:"ID"`
	ClientSecret string `env:"SECRET"`
	RedirectURI  string `env:"REDIRECT_URI"`
	Host         string `env:"HOST" envDefault:"127.0.0.1"`
	Port         uint16 `env:"PORT" envDefault:"8080"`
	AppFolder    string `env:"APP_FOLDER"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. The credential triple is
// required; address and folder name fall back to defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.ClientID == "" {
		return Config{}, fmt.Errorf("config: missing OAuth2 credential variable ID")
	}

	if cfg.ClientSecret == "" {
		return Config{}, fmt.Errorf("config: missing OAuth2 credential variable SECRET")
	}

	if cfg.RedirectURI == "" {
		return Config{}, fmt.Errorf("config: missing OAuth2 credential variable REDIRECT_URI")
	}

	if cfg.AppFolder == "" {
		cfg.AppFolder = DefaultAppFolder
	}

	return cfg, nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// OAuth builds the oauth2 client configuration for the authorization-code
// flow against Google's endpoints.
func (c Config) OAuth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       oauthScopes,
		Endpoint:     google.Endpoint,
	}
}
