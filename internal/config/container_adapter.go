package config

import (
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/container"
)

// ToContainerConfig converts the loaded Config into the container's configuration
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Database: container.DatabaseConfig{
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
		},
		Storage: container.StorageConfig{
			BaseDir:   c.Storage.BaseDir,
			UploadDir: c.Storage.UploadDir,
			MergedDir: c.Storage.MergedDir,
			MaxFiles:  c.Storage.MaxFiles,
		},
		Auth: container.AuthConfig{
			BcryptCost: c.Auth.BcryptCost,
		},
	}
}
