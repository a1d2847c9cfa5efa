package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEnv writes a .env into dir and unsets its keys afterwards; godotenv
// copies them into the process environment, where they would outlive the
// test.
func writeEnv(t *testing.T, dir, content string, keys ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadWithoutEnvFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, "./exports", cfg.Exports.Dir)
	assert.Equal(t, 24, cfg.Enrollment.MaxCreditsPerStudent)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "ENV=production\nPORT=9090\nMAX_CREDITS_PER_STUDENT=30\nALLOWED_ORIGINS=http://a.test, http://b.test\n"
	writeEnv(t, dir, env, "ENV", "PORT", "MAX_CREDITS_PER_STUDENT", "ALLOWED_ORIGINS")
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30, cfg.Enrollment.MaxCreditsPerStudent)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadNonPositiveCreditCeilingFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeEnv(t, dir, "MAX_CREDITS_PER_STUDENT=0\n", "MAX_CREDITS_PER_STUDENT")
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Enrollment.MaxCreditsPerStudent)
}
