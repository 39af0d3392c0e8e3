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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1111, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:1111", cfg.Server.Address())
	assert.Equal(t, "public", cfg.Storage.BaseDir)
	assert.Equal(t, "pdf", cfg.Storage.UploadDir)
	assert.Equal(t, "merged_pdf", cfg.Storage.MergedDir)
	assert.Equal(t, 10, cfg.Storage.MaxFiles)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  read_timeout: 5s
database:
  path: /tmp/forms.db
storage:
  max_files: 4
logger:
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("OFFICE_STORAGE_BASE_DIR", "/srv/public")
	t.Setenv("OFFICE_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/forms.db", cfg.Database.Path)
	assert.Equal(t, "/srv/public", cfg.Storage.BaseDir)
	assert.Equal(t, 4, cfg.Storage.MaxFiles)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"no database path", func(c *Config) { c.Database.Path = "" }, "database.path is required"},
		{"same areas", func(c *Config) { c.Storage.MergedDir = c.Storage.UploadDir }, "must differ"},
		{"no files allowed", func(c *Config) { c.Storage.MaxFiles = 0 }, "storage.max_files"},
		{"unknown log format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
		{"unknown mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
