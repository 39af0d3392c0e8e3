package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/persistence/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LookupRepository implements port.LookupRepository.
// All lookup collections share one document table keyed by collection name.
type LookupRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLookupRepository creates a new lookup repository
func NewLookupRepository(db *sql.DB, logger *zap.Logger) *LookupRepository {
	return &LookupRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LookupRepository) ListDepartments(ctx context.Context) ([]*entity.Department, error) {
	return listDocuments[entity.Department](ctx, r, entity.CollectionDepartments)
}

func (r *LookupRepository) ListVehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	return listDocuments[entity.Vehicle](ctx, r, entity.CollectionVehicles)
}

func (r *LookupRepository) ListEmployees(ctx context.Context) ([]*entity.Employee, error) {
	return listDocuments[entity.Employee](ctx, r, entity.CollectionEmployees)
}

func (r *LookupRepository) ListHeadCategories(ctx context.Context) ([]*entity.HeadCategory, error) {
	return listDocuments[entity.HeadCategory](ctx, r, entity.CollectionHeadCategories)
}

func (r *LookupRepository) ListSubCategories(ctx context.Context) ([]*entity.SubCategory, error) {
	return listDocuments[entity.SubCategory](ctx, r, entity.CollectionSubCategories)
}

// Save inserts or replaces a lookup document
func (r *LookupRepository) Save(ctx context.Context, collection entity.Collection, doc entity.Document) error {
	if doc.DocumentID() == "" {
		doc.SetDocumentID(uuid.NewString())
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", collection, err)
	}

	_, err = sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO lookups (id, collection, document) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document
	`, doc.DocumentID(), string(collection), string(payload))
	if err != nil {
		r.logger.Error("Failed to save lookup",
			zap.String("collection", string(collection)),
			zap.String("id", doc.DocumentID()),
			zap.Error(err))
		return fmt.Errorf("failed to save %s document: %w", collection, err)
	}
	return nil
}

func listDocuments[T any](ctx context.Context, r *LookupRepository, collection entity.Collection) ([]*T, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx,
		`SELECT id, document FROM lookups WHERE collection = ? ORDER BY rowid`, string(collection))
	if err != nil {
		r.logger.Error("Failed to list lookups", zap.String("collection", string(collection)), zap.Error(err))
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]*T, 0)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", collection, err)
		}

		doc := new(T)
		if err := json.Unmarshal([]byte(raw), doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document %s: %w", collection, id, err)
		}
		if d, ok := any(doc).(entity.Document); ok {
			d.SetDocumentID(id)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

var _ port.LookupRepository = (*LookupRepository)(nil)
