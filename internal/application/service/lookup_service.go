package service

import (
	"context"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// LookupService serves the dropdown collections
type LookupService interface {
	Departments(ctx context.Context) ([]*entity.Department, error)
	Employees(ctx context.Context) ([]*entity.Employee, error)
	Vehicles(ctx context.Context) ([]*entity.Vehicle, error)
	HeadCategories(ctx context.Context) ([]*entity.HeadCategory, error)
	SubCategories(ctx context.Context) ([]*entity.SubCategory, error)

	// Months derives the month listing from the active fiscal years
	Months(ctx context.Context) ([]entity.MonthStatus, error)
	FiscalYears(ctx context.Context) ([]*entity.FiscalYear, error)
	FiscalYearOptions(ctx context.Context) ([]entity.FiscalYearOption, error)
	ActiveMonths(ctx context.Context, fyName string) (*entity.FiscalYear, error)
}

type lookupServiceImpl struct {
	lookupRepo port.LookupRepository
	fyRepo     port.FiscalYearRepository
	logger     Logger
}

// NewLookupService creates a new LookupService
func NewLookupService(lookupRepo port.LookupRepository, fyRepo port.FiscalYearRepository, logger Logger) LookupService {
	return &lookupServiceImpl{
		lookupRepo: lookupRepo,
		fyRepo:     fyRepo,
		logger:     logger,
	}
}

func (s *lookupServiceImpl) Departments(ctx context.Context) ([]*entity.Department, error) {
	docs, err := s.lookupRepo.ListDepartments(ctx)
	return docs, s.wrap(err, "Failed to retrieve department")
}

func (s *lookupServiceImpl) Employees(ctx context.Context) ([]*entity.Employee, error) {
	docs, err := s.lookupRepo.ListEmployees(ctx)
	return docs, s.wrap(err, "Failed to retrieve employee")
}

func (s *lookupServiceImpl) Vehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	docs, err := s.lookupRepo.ListVehicles(ctx)
	return docs, s.wrap(err, "Failed to retrieve vehicle")
}

func (s *lookupServiceImpl) HeadCategories(ctx context.Context) ([]*entity.HeadCategory, error) {
	docs, err := s.lookupRepo.ListHeadCategories(ctx)
	return docs, s.wrap(err, "Failed to retrieve head_cat")
}

func (s *lookupServiceImpl) SubCategories(ctx context.Context) ([]*entity.SubCategory, error) {
	docs, err := s.lookupRepo.ListSubCategories(ctx)
	return docs, s.wrap(err, "Failed to retrieve sub_cat")
}

func (s *lookupServiceImpl) Months(ctx context.Context) ([]entity.MonthStatus, error) {
	years, err := s.fyRepo.ListActive(ctx)
	if err != nil {
		return nil, s.wrap(err, "Failed to retrieve month")
	}
	return entity.MonthStatusView(years), nil
}

func (s *lookupServiceImpl) FiscalYears(ctx context.Context) ([]*entity.FiscalYear, error) {
	years, err := s.fyRepo.List(ctx)
	return years, s.wrap(err, "Failed to retrieve fy_year")
}

func (s *lookupServiceImpl) FiscalYearOptions(ctx context.Context) ([]entity.FiscalYearOption, error) {
	years, err := s.fyRepo.List(ctx)
	if err != nil {
		return nil, s.wrap(err, "Failed to retrieve financial year data")
	}

	entity.SortFiscalYearsByStart(years)
	options := make([]entity.FiscalYearOption, 0, len(years))
	for _, fy := range years {
		options = append(options, entity.FiscalYearOption{
			FyName: fy.FyName,
			FyID:   fy.FyID,
			Months: fy.Months,
		})
	}
	return options, nil
}

// ActiveMonths returns the fiscal year with only its active months, in calendar order
func (s *lookupServiceImpl) ActiveMonths(ctx context.Context, fyName string) (*entity.FiscalYear, error) {
	fy, err := s.fyRepo.GetByName(ctx, fyName)
	if err != nil {
		return nil, s.wrap(err, "Server error")
	}
	if fy == nil {
		return nil, entity.NotFoundError("Financial year not found")
	}

	return &entity.FiscalYear{
		ID:     fy.ID,
		FyName: fy.FyName,
		FyID:   fy.FyID,
		Months: fy.ActiveMonths(),
	}, nil
}

func (s *lookupServiceImpl) wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	s.logger.Error(message, "error", err)
	return entity.NewError(entity.KindDatabase, message, err)
}
