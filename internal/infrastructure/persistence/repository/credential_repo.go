package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// CredentialRepository implements port.CredentialRepository
type CredentialRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *sql.DB, logger *zap.Logger) *CredentialRepository {
	return &CredentialRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUsername retrieves a credential by username
func (r *CredentialRepository) GetByUsername(ctx context.Context, username string) (*entity.Credential, error) {
	var cred entity.Credential
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, `
		SELECT username, password_hash, admin, created_at
		FROM credentials
		WHERE username = ?
	`, username).Scan(&cred.Username, &cred.PasswordHash, &cred.Admin, &cred.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get credential", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &cred, nil
}

// Upsert creates the account or replaces its hash and admin flag
func (r *CredentialRepository) Upsert(ctx context.Context, cred *entity.Credential) error {
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = time.Now().UTC()
	}

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO credentials (username, password_hash, admin, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash, admin = excluded.admin
	`, cred.Username, cred.PasswordHash, cred.Admin, cred.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert credential", zap.String("username", cred.Username), zap.Error(err))
		return fmt.Errorf("failed to upsert credential: %w", err)
	}
	return nil
}

var _ port.CredentialRepository = (*CredentialRepository)(nil)
