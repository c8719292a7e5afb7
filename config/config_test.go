package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postpass")
	t.Setenv("DB_NAME", "annapurna")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("INFERENCE_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.InferenceTimeout)
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiAPIURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.InferenceTimeout)
}

func TestLoadConfigMissingGeminiKeyIsNotFatal(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err, "a missing AI key degrades features, it does not stop the server")
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadConfigRequiresDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGeminiKeyFromFile(t *testing.T) {
	setRequiredEnv(t)
	keyFile := filepath.Join(t.TempDir(), "gemini_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("file-key\n"), 0600))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.GeminiAPIKey)
}

func TestLoadConfigFromSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)

	secrets := map[string]string{
		"db_host":     "db.internal",
		"db_port":     "5432",
		"db_user":     "annapurna",
		"db_password": "s3cret",
		"db_name":     "annapurna",
		"jwt_secret":  "prod-secret",
		"server_port": "8081",
	}
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, name), []byte(value+"\n"), 0600))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, "8081", cfg.ServerPort)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
}
