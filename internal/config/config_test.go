package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validConfig = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "fleetrent"
  password: "secret"
  database: "fleetrent_dev"
  ssl_mode: "disable"
log:
  level: "info"
  format: "text"
`

func TestLoad(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validConfig))
		assert.NoError(t, err)
		assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
		assert.Contains(t, cfg.GetDatabaseConnectionString(), "fleetrent_dev")
		// Scheduler falls back to the nightly default.
		assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.OverdueReminders)
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("SERVER_PORT", "9090")

		cfg, err := Load(writeConfig(t, validConfig))
		assert.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 9090, cfg.Server.Port)
	})

	t.Run("MissingDatabaseHost", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 8080
database:
  user: "fleetrent"
  database: "fleetrent_dev"
`))
		assert.Error(t, err)
	})

	t.Run("SMTPOptional", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validConfig))
		assert.NoError(t, err)
		assert.Empty(t, cfg.SMTP.Host)
	})

	t.Run("SMTPRequiresFromWhenConfigured", func(t *testing.T) {
		_, err := Load(writeConfig(t, validConfig+`
smtp:
  host: "smtp.local"
  port: 587
`))
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
