package port

import (
	"context"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// FormRepository persists form records as documents
type FormRepository interface {
	// Create stores a new form. An empty ID is assigned by the repository.
	Create(ctx context.Context, form *entity.FormRecord) error

	// GetByID returns nil, nil when the form does not exist
	GetByID(ctx context.Context, id string) (*entity.FormRecord, error)

	// Update replaces the stored document. Reports false when the form does not exist.
	Update(ctx context.Context, form *entity.FormRecord) (bool, error)

	// Delete removes the form and returns the deleted document, or nil when absent
	Delete(ctx context.Context, id string) (*entity.FormRecord, error)

	// List returns forms matching the filter in insertion order
	List(ctx context.Context, filter entity.FormFilter) ([]*entity.FormRecord, error)

	// ListMonthRefs returns the distinct month objects used by stored forms
	ListMonthRefs(ctx context.Context) ([]entity.MonthRef, error)

	// ListFiscalYearRefs returns the distinct fiscal years used by stored forms
	ListFiscalYearRefs(ctx context.Context) ([]entity.FormFiscalYear, error)
}

// LookupRepository reads and writes the lookup collections
type LookupRepository interface {
	ListDepartments(ctx context.Context) ([]*entity.Department, error)
	ListVehicles(ctx context.Context) ([]*entity.Vehicle, error)
	ListEmployees(ctx context.Context) ([]*entity.Employee, error)
	ListHeadCategories(ctx context.Context) ([]*entity.HeadCategory, error)
	ListSubCategories(ctx context.Context) ([]*entity.SubCategory, error)

	// Save inserts doc into the collection, assigning an id when empty
	Save(ctx context.Context, collection entity.Collection, doc entity.Document) error
}

// FiscalYearRepository stores fiscal years and their embedded month flags
type FiscalYearRepository interface {
	List(ctx context.Context) ([]*entity.FiscalYear, error)
	ListActive(ctx context.Context) ([]*entity.FiscalYear, error)

	// GetByName returns nil, nil when the fiscal year does not exist
	GetByName(ctx context.Context, fyName string) (*entity.FiscalYear, error)

	// SetActive upserts the fiscal year and sets its flag
	SetActive(ctx context.Context, fyName string, active bool) (*entity.FiscalYear, error)

	// SetMonthActive upserts the fiscal year and its embedded month, then sets the month flag
	SetMonthActive(ctx context.Context, fyName, monthName string, active bool) (*entity.FiscalYear, error)
}

// CredentialRepository stores signin accounts
type CredentialRepository interface {
	// GetByUsername returns nil, nil when the user does not exist
	GetByUsername(ctx context.Context, username string) (*entity.Credential, error)
	Upsert(ctx context.Context, cred *entity.Credential) error
}

// TransactionManager runs fn inside a database transaction.
// Repositories called with the ctx passed to fn join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
