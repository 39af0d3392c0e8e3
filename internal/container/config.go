// Package container provides dependency injection and lifecycle management
// for the office expense backend.
package container

import (
	"errors"
	"time"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// Config holds all configuration for the Container.
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Storage configuration
	Storage StorageConfig

	// Auth configuration
	Auth AuthConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// StorageConfig holds the file store layout.
type StorageConfig struct {
	// BaseDir holds both areas and is served statically
	BaseDir string

	// UploadDir is the area for raw uploads
	UploadDir string

	// MergedDir is the area for merged PDFs
	MergedDir string

	// MaxFiles caps the file parts of one request
	MaxFiles int
}

// AuthConfig holds credential settings.
type AuthConfig struct {
	// BcryptCost of zero uses bcrypt.DefaultCost
	BcryptCost int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:         "data/office.db",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Storage: StorageConfig{
			BaseDir:   "public",
			UploadDir: entity.AreaUploads,
			MergedDir: entity.AreaMerged,
			MaxFiles:  entity.MaxUploadFiles,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Storage.BaseDir == "" {
		return errors.New("storage.base_dir is required")
	}
	if c.Storage.UploadDir == "" || c.Storage.MergedDir == "" {
		return errors.New("storage.upload_dir and storage.merged_dir are required")
	}
	return nil
}
