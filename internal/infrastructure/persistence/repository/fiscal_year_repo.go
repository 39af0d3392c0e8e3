package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/persistence/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FiscalYearRepository implements port.FiscalYearRepository
type FiscalYearRepository struct {
	db     *sql.DB
	tx     port.TransactionManager
	logger *zap.Logger
}

// NewFiscalYearRepository creates a new fiscal year repository
func NewFiscalYearRepository(db *sql.DB, tx port.TransactionManager, logger *zap.Logger) *FiscalYearRepository {
	return &FiscalYearRepository{
		db:     db,
		tx:     tx,
		logger: logger,
	}
}

// List returns all fiscal years with their months, in insertion order
func (r *FiscalYearRepository) List(ctx context.Context) ([]*entity.FiscalYear, error) {
	return r.query(ctx, `SELECT id, fy_name, fy_id FROM fiscal_years ORDER BY rowid`)
}

// ListActive returns the fiscal years whose flag is set
func (r *FiscalYearRepository) ListActive(ctx context.Context) ([]*entity.FiscalYear, error) {
	return r.query(ctx, `SELECT id, fy_name, fy_id FROM fiscal_years WHERE fy_id = 1 ORDER BY rowid`)
}

// GetByName retrieves a fiscal year by name
func (r *FiscalYearRepository) GetByName(ctx context.Context, fyName string) (*entity.FiscalYear, error) {
	years, err := r.query(ctx, `SELECT id, fy_name, fy_id FROM fiscal_years WHERE fy_name = ?`, fyName)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, nil
	}
	return years[0], nil
}

// SetActive upserts the fiscal year and sets its flag
func (r *FiscalYearRepository) SetActive(ctx context.Context, fyName string, active bool) (*entity.FiscalYear, error) {
	var fy *entity.FiscalYear
	err := r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := r.upsertYear(ctx, fyName, &active); err != nil {
			return err
		}
		var err error
		fy, err = r.GetByName(ctx, fyName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fy, nil
}

// SetMonthActive upserts the fiscal year and month entry, then sets the month flag.
// A new month is appended after the existing ones.
func (r *FiscalYearRepository) SetMonthActive(ctx context.Context, fyName, monthName string, active bool) (*entity.FiscalYear, error) {
	var fy *entity.FiscalYear
	err := r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := r.upsertYear(ctx, fyName, nil); err != nil {
			return err
		}

		_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, `
			INSERT INTO fiscal_year_months (fy_name, month_name, month_id, position)
			VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM fiscal_year_months WHERE fy_name = ?))
			ON CONFLICT(fy_name, month_name) DO UPDATE SET month_id = excluded.month_id
		`, fyName, monthName, active, fyName)
		if err != nil {
			r.logger.Error("Failed to set month flag",
				zap.String("fy_name", fyName),
				zap.String("month_name", monthName),
				zap.Error(err))
			return fmt.Errorf("failed to set month flag: %w", err)
		}

		fy, err = r.GetByName(ctx, fyName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fy, nil
}

// upsertYear creates the fiscal year when missing. A nil active leaves the flag untouched.
func (r *FiscalYearRepository) upsertYear(ctx context.Context, fyName string, active *bool) error {
	exec := sqlite.ExecutorFor(ctx, r.db)

	var err error
	if active == nil {
		_, err = exec.ExecContext(ctx,
			`INSERT INTO fiscal_years (id, fy_name, fy_id) VALUES (?, ?, 0) ON CONFLICT(fy_name) DO NOTHING`,
			uuid.NewString(), fyName)
	} else {
		_, err = exec.ExecContext(ctx, `
			INSERT INTO fiscal_years (id, fy_name, fy_id) VALUES (?, ?, ?)
			ON CONFLICT(fy_name) DO UPDATE SET fy_id = excluded.fy_id
		`, uuid.NewString(), fyName, *active)
	}
	if err != nil {
		r.logger.Error("Failed to upsert fiscal year", zap.String("fy_name", fyName), zap.Error(err))
		return fmt.Errorf("failed to upsert fiscal year: %w", err)
	}
	return nil
}

func (r *FiscalYearRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.FiscalYear, error) {
	exec := sqlite.ExecutorFor(ctx, r.db)

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query fiscal years", zap.Error(err))
		return nil, fmt.Errorf("failed to query fiscal years: %w", err)
	}

	years := make([]*entity.FiscalYear, 0)
	index := make(map[string]*entity.FiscalYear)
	for rows.Next() {
		fy := &entity.FiscalYear{Months: make([]entity.MonthStatus, 0)}
		if err := rows.Scan(&fy.ID, &fy.FyName, &fy.FyID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan fiscal year: %w", err)
		}
		years = append(years, fy)
		index[fy.FyName] = fy
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(years) == 0 {
		return years, nil
	}

	monthRows, err := exec.QueryContext(ctx,
		`SELECT fy_name, month_name, month_id FROM fiscal_year_months ORDER BY fy_name, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal year months: %w", err)
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var fyName string
		var m entity.MonthStatus
		if err := monthRows.Scan(&fyName, &m.MonthName, &m.MonthID); err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year month: %w", err)
		}
		if fy, ok := index[fyName]; ok {
			fy.Months = append(fy.Months, m)
		}
	}
	return years, monthRows.Err()
}

var _ port.FiscalYearRepository = (*FiscalYearRepository)(nil)
