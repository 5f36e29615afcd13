package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ENVIRONMENT", "PORT", "LOG_LEVEL", "LOG_FORMAT", "CATALOG_DB_PATH",
		"EMAIL_API_KEY", "FROM_EMAIL", "TO_EMAIL", "EMAIL_TIMEOUT",
		"SHARE_SECRET", "PUBLIC_BASE_URL",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "./catalog.db", cfg.CatalogDBPath)
	assert.Equal(t, "noreply@psxcreative.com", cfg.FromEmail)
	assert.Equal(t, "studio@psxcreative.com", cfg.ToEmail)
	assert.Equal(t, 10*time.Second, cfg.EmailTimeout)
	assert.False(t, cfg.EmailEnabled())
	assert.Len(t, cfg.Warnings(), 2)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_DB_PATH", "")
	t.Setenv("EMAIL_API_KEY", "re_123")
	t.Setenv("EMAIL_TIMEOUT", "3s")
	t.Setenv("SHARE_SECRET", "s3cret")
	t.Setenv("PUBLIC_BASE_URL", "https://quote.psx.test/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	assert.Equal(t, "9090", cfg.Port)
	assert.Empty(t, cfg.CatalogDBPath)
	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, 3*time.Second, cfg.EmailTimeout)
	assert.Equal(t, "https://quote.psx.test", cfg.PublicBaseURL)
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_ReadsDotEnvWithoutOverriding(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")
	require.NoError(t, os.WriteFile(".env", []byte("PORT=1111\nTO_EMAIL=dev@psx.test\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TO_EMAIL") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "dev@psx.test", cfg.ToEmail)
}

func TestLoad_RejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMAIL_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("EMAIL_TIMEOUT", "0s")
	_, err = Load()
	assert.Error(t, err)
}
