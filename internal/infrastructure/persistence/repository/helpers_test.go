package repository

import (
	"path/filepath"
	"testing"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/persistence/sqlite"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/migrations"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/pkg/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) (*database.DB, *zap.Logger) {
	t.Helper()

	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.NewMigrator(db, logger).Run(migrations.FS)
	require.NoError(t, err)

	return db, logger
}

func newTxManager(db *database.DB, logger *zap.Logger) *sqlite.DB {
	return sqlite.NewDB(db.DB, logger)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
