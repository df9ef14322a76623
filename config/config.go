// Package config provides YAML configuration parsing for restmon.
//
// This package enables running restmon as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	base_uri: https://api.example.com
//	environment: staging
//	timeout: 5s
//
//	auth:
//	  username: monitor
//	  password: ${MONITOR_PASSWORD}
//
//	endpoints:
//	  - /health
//	  - /status
//	  - metrics/summary
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kkirsche/restmon"
)

// Config is the root configuration structure for restmon.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// BaseURI is the shared base address for all endpoints. Required;
	// a trailing slash is stripped by the client at construction.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	BaseURI string `yaml:"base_uri"`

	// Endpoints is the ordered list of paths to poll, relative to
	// BaseURI. Order is preserved and duplicates are permitted.
	Endpoints []string `yaml:"endpoints"`

	// Auth is the optional fixed basic-auth credential pair.
	Auth AuthConfig `yaml:"auth"`

	// Environment tags every log record. Defaults to "prod".
	Environment string `yaml:"environment"`

	// Timeout is the per-attempt request timeout. Accepts duration strings like
	// "5s", "500ms". Defaults to 5s.
	Timeout Duration `yaml:"timeout"`
}

// AuthConfig holds an optional basic-auth credential pair.
// Values support environment variable substitution.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Empty reports whether no credentials were configured.
func (a AuthConfig) Empty() bool {
	return a.Username == "" && a.Password == ""
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in base_uri, endpoints, and auth
// values. Defaults are applied for Environment ("prod") and Timeout (5s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Environment == "" {
		cfg.Environment = "prod"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(5 * time.Second)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.BaseURI == "" {
		return errors.New("base_uri is required")
	}

	expanded, err := expandEnvVars(c.BaseURI)
	if err != nil {
		return fmt.Errorf("base_uri: %w", err)
	}
	c.BaseURI = expanded

	parsedURL, err := url.Parse(c.BaseURI)
	if err != nil {
		return fmt.Errorf("invalid base_uri: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_uri scheme must be http or https, got %q", parsedURL.Scheme)
	}

	if len(c.Endpoints) == 0 {
		return errors.New("at least one endpoint must be defined")
	}
	for i, ep := range c.Endpoints {
		if ep == "" {
			return fmt.Errorf("endpoints[%d]: path cannot be empty", i)
		}
		expanded, err := expandEnvVars(ep)
		if err != nil {
			return fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		c.Endpoints[i] = expanded
	}

	if c.Auth.Username != "" {
		expanded, err := expandEnvVars(c.Auth.Username)
		if err != nil {
			return fmt.Errorf("auth.username: %w", err)
		}
		c.Auth.Username = expanded
	}
	if c.Auth.Password != "" {
		if c.Auth.Username == "" {
			return errors.New("auth.password is set but auth.username is empty")
		}
		expanded, err := expandEnvVars(c.Auth.Password)
		if err != nil {
			return fmt.Errorf("auth.password: %w", err)
		}
		c.Auth.Password = expanded
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}
	if c.Timeout.Duration() > 0 && c.Timeout.Duration() < time.Second {
		return fmt.Errorf("timeout must be at least 1s if specified, got %s", c.Timeout.Duration())
	}

	return nil
}

// ClientOptions converts the config into options for [restmon.New].
//
// The returned options configure endpoints, environment, timeout, and
// credentials; the caller typically appends restmon.WithLogger before
// constructing the client.
func (c *Config) ClientOptions() []restmon.Option {
	opts := []restmon.Option{
		restmon.WithEndpoints(c.Endpoints...),
		restmon.WithEnvironment(c.Environment),
		restmon.WithRequestTimeout(c.Timeout.Duration()),
	}
	if !c.Auth.Empty() {
		opts = append(opts, restmon.WithBasicAuth(c.Auth.Username, c.Auth.Password))
	}
	return opts
}
