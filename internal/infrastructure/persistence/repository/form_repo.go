package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/infrastructure/persistence/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormRepository implements port.FormRepository on a JSON document table
type FormRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *sql.DB, logger *zap.Logger) *FormRepository {
	return &FormRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Create inserts a new form document
func (r *FormRepository) Create(ctx context.Context, form *entity.FormRecord) error {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	now := r.now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now

	doc, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}

	_, err = sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO forms (id, document, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		form.ID, string(doc), now, now,
	)
	if err != nil {
		r.logger.Error("Failed to create form", zap.String("id", form.ID), zap.Error(err))
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

// GetByID retrieves a form by its id
func (r *FormRepository) GetByID(ctx context.Context, id string) (*entity.FormRecord, error) {
	var doc string
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx,
		`SELECT document FROM forms WHERE id = ?`, id,
	).Scan(&doc)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get form", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	return decodeForm(id, doc)
}

// Update replaces the stored document of an existing form
func (r *FormRepository) Update(ctx context.Context, form *entity.FormRecord) (bool, error) {
	form.UpdatedAt = r.now().UTC()

	doc, err := json.Marshal(form)
	if err != nil {
		return false, fmt.Errorf("failed to encode form: %w", err)
	}

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx,
		`UPDATE forms SET document = ?, updated_at = ? WHERE id = ?`,
		string(doc), form.UpdatedAt, form.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update form", zap.String("id", form.ID), zap.Error(err))
		return false, fmt.Errorf("failed to update form: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a form and returns the removed document
func (r *FormRepository) Delete(ctx context.Context, id string) (*entity.FormRecord, error) {
	form, err := r.GetByID(ctx, id)
	if err != nil || form == nil {
		return nil, err
	}

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, `DELETE FROM forms WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete form", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to delete form: %w", err)
	}

	// Lost a race with a concurrent delete
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return form, nil
}

// List returns forms matching every non-empty filter field, oldest first
func (r *FormRepository) List(ctx context.Context, filter entity.FormFilter) ([]*entity.FormRecord, error) {
	where, args := buildFormFilter(filter)

	query := `SELECT id, document FROM forms`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list forms", zap.Error(err))
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	forms := make([]*entity.FormRecord, 0)
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		form, err := decodeForm(id, doc)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

// ListMonthRefs returns the distinct month objects referenced by forms
func (r *FormRepository) ListMonthRefs(ctx context.Context) ([]entity.MonthRef, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, `
		SELECT DISTINCT json_extract(document, '$.month')
		FROM forms
		WHERE json_type(document, '$.month') = 'object'
	`)
	if err != nil {
		r.logger.Error("Failed to list form months", zap.Error(err))
		return nil, fmt.Errorf("failed to list form months: %w", err)
	}
	defer rows.Close()

	months := make([]entity.MonthRef, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		var m entity.MonthRef
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("failed to decode month: %w", err)
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// ListFiscalYearRefs groups forms by fiscal year id and sorts the groups by name
func (r *FormRepository) ListFiscalYearRefs(ctx context.Context) ([]entity.FormFiscalYear, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, `
		SELECT MIN(json_extract(document, '$.fy_year._id')) AS fy_id,
			MIN(json_extract(document, '$.fy_year.fy_name')) AS fy_name
		FROM forms
		WHERE json_type(document, '$.fy_year') = 'object'
		GROUP BY COALESCE(json_extract(document, '$.fy_year._id'),
			'name:' || json_extract(document, '$.fy_year.fy_name'))
		ORDER BY fy_name
	`)
	if err != nil {
		r.logger.Error("Failed to list form fiscal years", zap.Error(err))
		return nil, fmt.Errorf("failed to list form fiscal years: %w", err)
	}
	defer rows.Close()

	years := make([]entity.FormFiscalYear, 0)
	for rows.Next() {
		var id, name sql.NullString
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year: %w", err)
		}
		fy := entity.FormFiscalYear{FyName: name.String}
		if id.Valid {
			fy.ID = &id.String
		}
		years = append(years, fy)
	}
	return years, rows.Err()
}

func decodeForm(id, doc string) (*entity.FormRecord, error) {
	var form entity.FormRecord
	if err := json.Unmarshal([]byte(doc), &form); err != nil {
		return nil, fmt.Errorf("failed to decode form %s: %w", id, err)
	}
	form.ID = id
	return &form, nil
}

func buildFormFilter(f entity.FormFilter) ([]string, []interface{}) {
	var where []string
	var args []interface{}

	eq := func(path string, v *string) {
		if v != nil {
			where = append(where, fmt.Sprintf("json_extract(document, '%s') = ?", path))
			args = append(args, *v)
		}
	}

	eq("$.fy_year.fy_name", f.FyName)
	eq("$.month.month_name", f.MonthName)
	eq("$.date", f.Date)
	eq("$.type", f.Type)
	eq("$.head_cat.head_cat_name", f.HeadCatName)
	eq("$.sub_cat.sub_cat_name", f.SubCatName)

	// BINARY collation compares dd-MM-yyyy strings byte by byte
	if f.DateFrom != nil {
		where = append(where, "json_extract(document, '$.date') >= ?")
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		where = append(where, "json_extract(document, '$.date') <= ?")
		args = append(args, *f.DateTo)
	}

	if f.TotalAmount != nil {
		where = append(where, "json_extract(document, '$.TotalAmount') = ?")
		args = append(args, *f.TotalAmount)
	}

	if f.VehicleID != nil {
		where = append(where, `EXISTS (SELECT 1 FROM json_each(document, '$.vehicles') v
			WHERE json_extract(v.value, '$.vehicle_id') = ?)`)
		args = append(args, *f.VehicleID)
	}

	if f.ParticularsContains != nil {
		where = append(where, "instr(lower(COALESCE(json_extract(document, '$.particulars'), '')), lower(?)) > 0")
		args = append(args, *f.ParticularsContains)
	}

	if len(f.BillNos) > 0 {
		where = append(where, fmt.Sprintf(`EXISTS (SELECT 1 FROM json_each(document, '$.bills') b
			WHERE json_extract(b.value, '$.bill_no') IN (%s))`, placeholders(len(f.BillNos))))
		for _, no := range f.BillNos {
			args = append(args, no)
		}
	}

	if len(f.EmployeeIDs) > 0 {
		where = append(where, fmt.Sprintf(`EXISTS (SELECT 1 FROM json_each(document, '$.received_by') e
			WHERE json_extract(e.value, '$.emp_id') IN (%s))`, placeholders(len(f.EmployeeIDs))))
		for _, id := range f.EmployeeIDs {
			args = append(args, id)
		}
	}

	return where, args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

var _ port.FormRepository = (*FormRepository)(nil)
