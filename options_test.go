package restmon

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithEndpoint_PreservesOrderAndDuplicates(t *testing.T) {
	client, err := New("https://api.example.com",
		WithEndpoint("a"),
		WithEndpoint("b"),
		WithEndpoint("a"),
	)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, []string{"a", "b", "a"}, client.Endpoints())
}

func TestWithEndpoints_AppendsAfterWithEndpoint(t *testing.T) {
	client, err := New("https://api.example.com",
		WithEndpoint("first"),
		WithEndpoints("second", "third"),
	)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, []string{"first", "second", "third"}, client.Endpoints())
}

func TestWithEnvironment(t *testing.T) {
	cfg := &clientConfig{}

	require.NoError(t, WithEnvironment("staging")(cfg))
	assert.Equal(t, "staging", cfg.environment)

	assert.Error(t, WithEnvironment("")(cfg))
}

func TestWithRequestTimeout(t *testing.T) {
	cfg := &clientConfig{}

	require.NoError(t, WithRequestTimeout(2*time.Second)(cfg))
	assert.Equal(t, 2*time.Second, cfg.timeout)

	assert.Error(t, WithRequestTimeout(0)(cfg))
	assert.Error(t, WithRequestTimeout(-time.Second)(cfg))
}

func TestWithBasicAuth(t *testing.T) {
	cfg := &clientConfig{}

	require.NoError(t, WithBasicAuth("monitor", "secret")(cfg))
	assert.Equal(t, "monitor", cfg.creds.Username)
	assert.Equal(t, "secret", cfg.creds.Password)

	// empty password is allowed, empty username is not
	assert.NoError(t, WithBasicAuth("monitor", "")(cfg))
	assert.Error(t, WithBasicAuth("", "secret")(cfg))
}

func TestWithLogger(t *testing.T) {
	cfg := &clientConfig{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	require.NoError(t, WithLogger(logger)(cfg))
	assert.Same(t, logger, cfg.logger)

	assert.Error(t, WithLogger(nil)(cfg))
}

func TestDefaults(t *testing.T) {
	client, err := New("https://api.example.com")
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "prod", client.environment)
	assert.NotNil(t, client.logger)
	assert.Empty(t, client.endpoints)
}
