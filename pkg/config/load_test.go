package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.Auth.Jwt.Expiry)
	assert.Equal(t, time.Hour, cfg.Auth.ResetTokenTTL)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxSize)
	assert.Contains(t, cfg.Upload.AllowedTypes, ".pdf")
	assert.Equal(t, 50.0, cfg.Referral.Bonus)
	assert.Equal(t, 10, cfg.Referral.Threshold)
	assert.Equal(t, []string{"bitcoin", "ethereum", "tether"}, cfg.PriceFeed.Coins)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("AUTH_JWT_SECRET"))
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.test")
	content := "AUTH_JWT_SECRET=from-file\nAPP_ENV=production\nSERVER_PORT=8081\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// godotenv does not override variables that are already set
	t.Setenv("AUTH_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("AUTH_JWT_SECRET"))
	t.Setenv("APP_ENV", "")
	require.NoError(t, os.Unsetenv("APP_ENV"))
	t.Setenv("SERVER_PORT", "")
	require.NoError(t, os.Unsetenv("SERVER_PORT"))

	cfg, err := Load(".env.test")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.Jwt.Secret)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", maskValue(""))
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "po****5432", maskValue("postgres://localhost:5432"))
}

func TestFindEnvFile_NotFound(t *testing.T) {
	_, err := FindEnvFile("definitely-missing.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
