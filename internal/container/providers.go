package container

import (
	"fmt"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/service"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/persistence/repository"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/persistence/sqlite"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/storage"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/metrics"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/pdfmerge"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/migrations"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/pkg/database"
	"go.uber.org/zap"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB             *database.DB
	TransactionMgr *sqlite.DB
}

// StorageBundle holds storage-related components.
type StorageBundle struct {
	FileStorage *storage.LocalFileStorage
	Areas       *storage.AreaManager
	Ingest      port.Ingest
	Merger      port.PDFMerger
}

// ProvideDatabase opens the document store and applies the embedded migrations.
func ProvideDatabase(cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	applied, err := database.NewMigrator(db, logger).Run(migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Migrations checked", zap.Int("applied", applied))

	return &DatabaseBundle{
		DB:             db,
		TransactionMgr: sqlite.NewDB(db.DB, logger),
	}, nil
}

// ProvideRepositories creates all repositories over one connection pool.
func ProvideRepositories(bundle *DatabaseBundle, logger *zap.Logger) (*RepositoryBundle, error) {
	if bundle == nil || bundle.DB == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	sqlDB := bundle.DB.DB
	return &RepositoryBundle{
		Forms:       repository.NewFormRepository(sqlDB, logger),
		Lookups:     repository.NewLookupRepository(sqlDB, logger),
		FiscalYears: repository.NewFiscalYearRepository(sqlDB, bundle.TransactionMgr, logger),
		Credentials: repository.NewCredentialRepository(sqlDB, logger),
	}, nil
}

// ProvideStorage creates the file store, its areas, the upload ingest and the merger.
func ProvideStorage(cfg *StorageConfig, recorder *metrics.Metrics, logger *zap.Logger) (*StorageBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	areas := storage.NewAreaManager(cfg.BaseDir, []string{cfg.UploadDir, cfg.MergedDir}, logger)
	if err := areas.EnsureAreas(); err != nil {
		return nil, err
	}

	fileStorage := storage.NewLocalFileStorage(cfg.BaseDir, logger)
	merger := pdfmerge.NewMerger(fileStorage, pdfmerge.Config{
		UploadArea: cfg.UploadDir,
		MergedArea: cfg.MergedDir,
	}, recorder, logger)

	return &StorageBundle{
		FileStorage: fileStorage,
		Areas:       areas,
		Ingest:      storage.NewUploadIngest(fileStorage, cfg.UploadDir, cfg.MaxFiles, logger),
		Merger:      merger,
	}, nil
}

// ServiceDeps holds dependencies required for creating services.
type ServiceDeps struct {
	Repos      *RepositoryBundle
	TxManager  port.TransactionManager
	Storage    *StorageBundle
	Metrics    *metrics.Metrics
	BcryptCost int
	Logger     *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serviceLogger := NewServiceLogger(deps.Logger)

	return &ServiceBundle{
		Forms: service.NewFormService(
			deps.Repos.Forms,
			deps.Storage.Ingest,
			deps.Storage.Merger,
			deps.Metrics,
			serviceLogger,
		),
		Queries: service.NewQueryService(deps.Repos.Forms, serviceLogger),
		Lookups: service.NewLookupService(deps.Repos.Lookups, deps.Repos.FiscalYears, serviceLogger),
		Admin:   service.NewAdminService(deps.Repos.FiscalYears, deps.TxManager, serviceLogger),
		Auth:    service.NewAuthService(deps.Repos.Credentials, deps.BcryptCost, serviceLogger),
	}, nil
}

// NewServiceLogger adapts zap to the key-value Logger used by services and handlers.
func NewServiceLogger(logger *zap.Logger) *ZapLoggerAdapter {
	return &ZapLoggerAdapter{logger: logger.WithOptions(zap.AddCallerSkip(1))}
}

// ZapLoggerAdapter adapts zap.Logger to the service.Logger interface.
type ZapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *ZapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
// Errors keep their zap.Error encoding.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
