package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_HOST", "localhost")
	t.Setenv("DATABASE_USER", "quiz")
	t.Setenv("DATABASE_DBNAME", "quiz")
	t.Setenv("JWT_SECRET", testSecret)
}

func TestLoad_FromEnvWithDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHrs)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 300, cfg.RateLimit.APIMaxRequests)
	assert.Equal(t, DefaultCategories(), cfg.Bootstrap.DefaultCategories)
	assert.Len(t, cfg.Bootstrap.DefaultCategories, 3)
}

func TestLoad_YAMLOverridesDefaultCategories(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: "9090"
bootstrap:
  default_categories:
    - name: Histoire
      description: Quiz d'histoire
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	require.Len(t, cfg.Bootstrap.DefaultCategories, 1)
	assert.Equal(t, "Histoire", cfg.Bootstrap.DefaultCategories[0].Name)
}

func TestLoad_EmptyDefaultCategoriesAllowed(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bootstrap:\n  default_categories: []\n"), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Empty(t, cfg.Bootstrap.DefaultCategories)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_RequiredFields(t *testing.T) {
	t.Run("short jwt secret", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "short")

		_, err := Load("")
		assert.ErrorContains(t, err, "jwt secret")
	})

	t.Run("database host missing", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DATABASE_HOST", "")

		_, err := Load("")
		assert.ErrorContains(t, err, "database configuration")
	})
}

func TestDatabaseConfig_ConnectionStrings(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "quiz", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=quiz sslmode=disable", d.PostgresConnectionString())
	assert.Equal(t, "postgres://u:p@db:5432/quiz?sslmode=disable", d.PostgresURL())
}
