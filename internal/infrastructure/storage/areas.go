package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// AreaManager owns the named subdirectories of the file store
type AreaManager struct {
	baseDir string
	areas   []string
	logger  *zap.Logger
}

// NewAreaManager creates a manager for the given area names under baseDir
func NewAreaManager(baseDir string, areas []string, logger *zap.Logger) *AreaManager {
	return &AreaManager{
		baseDir: baseDir,
		areas:   areas,
		logger:  logger,
	}
}

// EnsureAreas creates every area directory that does not exist yet
func (m *AreaManager) EnsureAreas() error {
	for _, area := range m.areas {
		dir := m.Path(area)
		if err := os.MkdirAll(dir, 0755); err != nil {
			m.logger.Error("Failed to create storage area",
				zap.String("area", area),
				zap.String("path", dir),
				zap.Error(err))
			return fmt.Errorf("failed to create storage area %s: %w", area, err)
		}
		m.logger.Debug("Storage area ready", zap.String("area", area), zap.String("path", dir))
	}
	return nil
}

// Path returns the directory of an area
func (m *AreaManager) Path(area string) string {
	return filepath.Join(m.baseDir, area)
}

// Exists checks if the area directory exists
func (m *AreaManager) Exists(area string) bool {
	info, err := os.Stat(m.Path(area))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Areas returns the managed area names
func (m *AreaManager) Areas() []string {
	return m.areas
}
