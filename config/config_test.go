package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	data := []byte(`
base_uri: https://api.example.com
environment: staging
timeout: 2s
auth:
  username: monitor
  password: hunter2
endpoints:
  - /health
  - status
  - /health
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURI)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, 2*time.Second, cfg.Timeout.Duration())
	assert.Equal(t, "monitor", cfg.Auth.Username)
	assert.Equal(t, "hunter2", cfg.Auth.Password)
	// order preserved, duplicates permitted
	assert.Equal(t, []string{"/health", "status", "/health"}, cfg.Endpoints)
}

func TestParse_Defaults(t *testing.T) {
	data := []byte(`
base_uri: https://api.example.com
endpoints:
  - /health
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, 5*time.Second, cfg.Timeout.Duration())
	assert.True(t, cfg.Auth.Empty())
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("RESTMON_TEST_HOST", "api.internal.example.com")
	t.Setenv("RESTMON_TEST_PASSWORD", "s3cret")

	data := []byte(`
base_uri: https://${RESTMON_TEST_HOST}
auth:
  username: monitor
  password: ${RESTMON_TEST_PASSWORD}
endpoints:
  - /${RESTMON_TEST_MISSING:-health}
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "https://api.internal.example.com", cfg.BaseURI)
	assert.Equal(t, "s3cret", cfg.Auth.Password)
	assert.Equal(t, []string{"/health"}, cfg.Endpoints)
}

func TestParse_MissingEnvVar(t *testing.T) {
	data := []byte(`
base_uri: https://${RESTMON_TEST_DEFINITELY_NOT_SET}
endpoints:
  - /health
`)

	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESTMON_TEST_DEFINITELY_NOT_SET")
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "not yaml",
			data:    "{{{{",
			wantErr: "YAML",
		},
		{
			name:    "missing base_uri",
			data:    "endpoints: [/health]",
			wantErr: "base_uri is required",
		},
		{
			name:    "bad scheme",
			data:    "base_uri: ftp://example.com\nendpoints: [/health]",
			wantErr: "scheme",
		},
		{
			name:    "no endpoints",
			data:    "base_uri: https://example.com",
			wantErr: "at least one endpoint",
		},
		{
			name:    "empty endpoint path",
			data:    "base_uri: https://example.com\nendpoints: ['']",
			wantErr: "path cannot be empty",
		},
		{
			name:    "password without username",
			data:    "base_uri: https://example.com\nendpoints: [/health]\nauth:\n  password: x",
			wantErr: "auth.username is empty",
		},
		{
			name:    "sub-second timeout",
			data:    "base_uri: https://example.com\nendpoints: [/health]\ntimeout: 100ms",
			wantErr: "at least 1s",
		},
		{
			name:    "malformed timeout",
			data:    "base_uri: https://example.com\nendpoints: [/health]\ntimeout: fast",
			wantErr: "invalid duration",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restmon.yaml")
	data := []byte("base_uri: https://api.example.com\nendpoints: [/health]\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURI)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
base_uri: https://api.example.com
environment: staging
timeout: 3s
auth:
  username: monitor
  password: secret
endpoints:
  - /health
  - /status
`))
	require.NoError(t, err)

	opts := cfg.ClientOptions()
	// endpoints + environment + timeout + auth
	assert.Len(t, opts, 4)

	cfgNoAuth, err := Parse([]byte(`
base_uri: https://api.example.com
endpoints: [/health]
`))
	require.NoError(t, err)
	assert.Len(t, cfgNoAuth.ClientOptions(), 3)
}
