package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DATABASE", "helpdesk.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.SeedLookups)
	assert.True(t, cfg.IsSQLite())
}

func TestLoadRequiresDatabase(t *testing.T) {
	t.Setenv("DB_DATABASE", "")

	_, err := Load()
	assert.EqualError(t, err, "DB_DATABASE is required")
}

func TestLoadRequiresUserForServerDatabases(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_DATABASE", "helpdesk")
	t.Setenv("DB_USER", "")

	_, err := Load()
	assert.EqualError(t, err, "DB_USER is required")
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown db type", "DB_TYPE", "oracle"},
		{"non numeric limit", "DB_CONNECTION_LIMIT", "many"},
		{"zero limit", "DB_CONNECTION_LIMIT", "0"},
		{"bad seed flag", "SEED_LOOKUPS", "sometimes"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_DATABASE", "helpdesk.db")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("DB_DATABASE=fromfile.db\nPORT=4000\n"), 0o600))

	t.Setenv("DOTENV_FILE", file)
	t.Setenv("PORT", "5000")
	// godotenv only fills unset keys; register cleanup for the one it sets
	t.Setenv("DB_DATABASE", "")
	os.Unsetenv("DB_DATABASE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fromfile.db", cfg.DBDatabase)
	assert.Equal(t, "5000", cfg.Port)
}
