// Package config resolves server and client configuration from flags and
// environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/chrisagrams/mstransfer/internal/constants"
)

// StoreAs selects what a receiver persists a completed transfer as.
type StoreAs string

const (
	StoreAsMSZ  StoreAs = "msz"
	StoreAsMZML StoreAs = "mzml"
)

// AuthMode selects the server's authentication plug-point implementation.
type AuthMode string

const (
	AuthNone   AuthMode = "none"
	AuthAPIKey AuthMode = "api-key"
)

// ServerConfig holds everything a receiver needs to start listening.
type ServerConfig struct {
	Host   string
	Port   int
	OutDir string

	StoreAs StoreAs

	Auth   AuthMode
	APIKey string

	SweepInterval    int // seconds
	SweepMaxAgeSecs  int
}

// Validate checks the resolved configuration for consistency.
func (c ServerConfig) Validate() error {
	if c.StoreAs != StoreAsMSZ && c.StoreAs != StoreAsMZML {
		return fmt.Errorf("store-as must be %q or %q, got %q", StoreAsMSZ, StoreAsMZML, c.StoreAs)
	}
	if c.Auth == AuthAPIKey && c.APIKey == "" {
		return fmt.Errorf("api-key auth requires a non-empty key")
	}
	if c.OutDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// Addr returns the host:port this server should bind to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ResolveAPIKey resolves the server's API key using the same
// priority-layered idiom used everywhere else in this repo: an explicit
// flag value wins, then an environment variable. There is no per-user
// profile or on-disk token file tier — mstransfer is a single-user tool
// with no multi-account concept.
func ResolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("MSTRANSFER_API_KEY")
}

// DefaultServerConfig returns baseline defaults before flags/env are
// applied.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            constants.DefaultPort,
		OutDir:          "./mstransfer-data",
		StoreAs:         StoreAsMSZ,
		Auth:            AuthNone,
		SweepInterval:   int(constants.SweepInterval.Seconds()),
		SweepMaxAgeSecs: int(constants.SweepMaxAge.Seconds()),
	}
}
