// Package cliconfig resolves CLI configuration from the environment.
//
// The tool needs exactly two pieces of configuration, both provided as
// environment variables:
//
//	MATTERMOST_SERVER_URL    Base URL of the Mattermost server
//	MATTERMOST_TOKEN         Personal access token or bot token
//
// Both are required. Load returns a descriptive error naming the missing
// variable so the CLI can print an actionable message and exit.
package cliconfig

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvServerURL = "MATTERMOST_SERVER_URL"
	EnvToken     = "MATTERMOST_TOKEN"
)

// DefaultExportFile is the default output path for the export command.
const DefaultExportFile = "mattermost_export.json"

// DefaultLogFile is the log file written next to the working directory.
const DefaultLogFile = "mmigrate.log"

// Config holds the resolved connection settings.
type Config struct {
	// ServerURL is the Mattermost server base URL, without a trailing slash.
	ServerURL string

	// Token is the bearer token used for every API call.
	Token string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	serverURL := strings.TrimSpace(os.Getenv(EnvServerURL))
	if serverURL == "" {
		return nil, fmt.Errorf("%s environment variable is required", EnvServerURL)
	}

	token := strings.TrimSpace(os.Getenv(EnvToken))
	if token == "" {
		return nil, fmt.Errorf("%s environment variable is required", EnvToken)
	}

	return &Config{
		ServerURL: strings.TrimRight(serverURL, "/"),
		Token:     token,
	}, nil
}
