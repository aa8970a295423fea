package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvUser, "jdoe")
	t.Setenv(EnvOrg, "acme")
	t.Setenv(EnvAPIKey, "secret-key")
	t.Setenv(EnvEnvironment, "test")
	t.Setenv(EnvAPIURL, "http://localhost:8080/api/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Username:    "jdoe",
		Org:         "acme",
		APIKey:      "secret-key",
		Environment: "test",
		URL:         "http://localhost:8080/api/",
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	cfg := Config{Username: "from-file", Org: "from-file"}
	t.Setenv(EnvUser, "from-env")
	t.Setenv(EnvOrg, "")
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvEnvironment, "")
	t.Setenv(EnvAPIURL, "")

	overlayEnv(&cfg)

	assert.Equal(t, "from-env", cfg.Username)
	assert.Equal(t, "from-file", cfg.Org)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "complete credentials",
			cfg:  Config{Username: "jdoe", Org: "acme", APIKey: "secret-key"},
		},
		{
			name:    "missing username",
			cfg:     Config{Org: "acme", APIKey: "secret-key"},
			wantErr: ErrMissingUsername,
		},
		{
			name:    "missing org",
			cfg:     Config{Username: "jdoe", APIKey: "secret-key"},
			wantErr: ErrMissingOrg,
		},
		{
			name:    "missing API key",
			cfg:     Config{Username: "jdoe", Org: "acme"},
			wantErr: ErrMissingAPIKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		var cfg Config
		assert.NoError(t, readFile("/nonexistent/cve.yaml", &cfg))
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := t.TempDir() + "/cve.yaml"
		writeTestFile(t, path, "username: jdoe\norg: acme\napi_key: secret-key\nenvironment: dev\n")

		var cfg Config
		require.NoError(t, readFile(path, &cfg))
		assert.Equal(t, "jdoe", cfg.Username)
		assert.Equal(t, "dev", cfg.Environment)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := t.TempDir() + "/cve.yaml"
		writeTestFile(t, path, "{username: [")

		var cfg Config
		assert.Error(t, readFile(path, &cfg))
	})
}
