package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/export"
)

var datePattern = regexp.MustCompile(entity.DatePattern)

// QueryService answers read-only form filters
type QueryService interface {
	ByFiscalYearMonth(ctx context.Context, fyName, monthName string) ([]*entity.FormRecord, error)
	ByFiscalYear(ctx context.Context, fyName string) ([]*entity.FormRecord, error)
	ByMonth(ctx context.Context, monthName string) ([]*entity.FormRecord, error)
	ByDate(ctx context.Context, date string) ([]*entity.FormRecord, error)
	ByDateRange(ctx context.Context, from, to string) ([]*entity.FormRecord, error)
	ByAmount(ctx context.Context, amount string) ([]*entity.FormRecord, error)
	ByType(ctx context.Context, formType string) ([]*entity.FormRecord, error)
	ByHeadCategory(ctx context.Context, name string) ([]*entity.FormRecord, error)
	BySubCategory(ctx context.Context, name string) ([]*entity.FormRecord, error)
	ByVehicleID(ctx context.Context, vehicleID string) ([]*entity.FormRecord, error)
	ByParticulars(ctx context.Context, term string) ([]*entity.FormRecord, error)
	ByBillNos(ctx context.Context, csv string) ([]*entity.FormRecord, error)
	ByEmployeeIDs(ctx context.Context, csv string) ([]*entity.FormRecord, error)

	// MonthOptions returns the months used by forms, one per name, in calendar order
	MonthOptions(ctx context.Context) ([]entity.MonthRef, error)
	// FormFiscalYears returns the fiscal years used by forms, sorted by name
	FormFiscalYears(ctx context.Context) ([]entity.FormFiscalYear, error)

	// ExportWorkbook renders the forms of a fiscal year month as XLSX
	ExportWorkbook(ctx context.Context, fyName, monthName string) ([]byte, error)
}

type queryServiceImpl struct {
	formRepo port.FormRepository
	logger   Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(formRepo port.FormRepository, logger Logger) QueryService {
	return &queryServiceImpl{
		formRepo: formRepo,
		logger:   logger,
	}
}

func (s *queryServiceImpl) list(ctx context.Context, filter entity.FormFilter) ([]*entity.FormRecord, error) {
	forms, err := s.formRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to query forms", "error", err)
		return nil, entity.NewError(entity.KindDatabase, "Failed to retrieve forms", err)
	}
	return forms, nil
}

func (s *queryServiceImpl) ByFiscalYearMonth(ctx context.Context, fyName, monthName string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{FyName: &fyName, MonthName: &monthName})
}

func (s *queryServiceImpl) ByFiscalYear(ctx context.Context, fyName string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{FyName: &fyName})
}

func (s *queryServiceImpl) ByMonth(ctx context.Context, monthName string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{MonthName: &monthName})
}

func (s *queryServiceImpl) ByDate(ctx context.Context, date string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{Date: &date})
}

// ByDateRange compares dd-MM-yyyy strings byte by byte, so ranges across months or
// years follow string order rather than calendar order.
func (s *queryServiceImpl) ByDateRange(ctx context.Context, from, to string) ([]*entity.FormRecord, error) {
	if !datePattern.MatchString(from) || !datePattern.MatchString(to) {
		return nil, entity.ValidationError("Invalid date format. Use dd-MM-yyyy")
	}
	return s.list(ctx, entity.FormFilter{DateFrom: &from, DateTo: &to})
}

func (s *queryServiceImpl) ByAmount(ctx context.Context, amount string) ([]*entity.FormRecord, error) {
	value, err := parseNumber(amount)
	if err != nil {
		return nil, entity.ValidationError("Invalid amount: %s", amount)
	}
	return s.list(ctx, entity.FormFilter{TotalAmount: &value})
}

func (s *queryServiceImpl) ByType(ctx context.Context, formType string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{Type: &formType})
}

func (s *queryServiceImpl) ByHeadCategory(ctx context.Context, name string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{HeadCatName: &name})
}

func (s *queryServiceImpl) BySubCategory(ctx context.Context, name string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{SubCatName: &name})
}

func (s *queryServiceImpl) ByVehicleID(ctx context.Context, vehicleID string) ([]*entity.FormRecord, error) {
	value, err := parseNumber(vehicleID)
	if err != nil {
		return nil, entity.ValidationError("Invalid vehicle id: %s", vehicleID)
	}
	return s.list(ctx, entity.FormFilter{VehicleID: &value})
}

func (s *queryServiceImpl) ByParticulars(ctx context.Context, term string) ([]*entity.FormRecord, error) {
	return s.list(ctx, entity.FormFilter{ParticularsContains: &term})
}

func (s *queryServiceImpl) ByBillNos(ctx context.Context, csv string) ([]*entity.FormRecord, error) {
	if csv == "" {
		return nil, entity.ValidationError("No bill numbers provided")
	}
	return s.list(ctx, entity.FormFilter{BillNos: strings.Split(csv, ",")})
}

func (s *queryServiceImpl) ByEmployeeIDs(ctx context.Context, csv string) ([]*entity.FormRecord, error) {
	if csv == "" {
		return nil, entity.ValidationError("No employee IDs provided")
	}
	ids := strings.Split(csv, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}
	return s.list(ctx, entity.FormFilter{EmployeeIDs: ids})
}

func (s *queryServiceImpl) MonthOptions(ctx context.Context) ([]entity.MonthRef, error) {
	refs, err := s.formRepo.ListMonthRefs(ctx)
	if err != nil {
		s.logger.Error("Failed to list form months", "error", err)
		return nil, entity.NewError(entity.KindDatabase, "Failed to retrieve months", err)
	}

	// one entry per month name, the last one seen wins
	index := make(map[string]int)
	unique := make([]entity.MonthRef, 0, len(refs))
	for _, ref := range refs {
		if i, ok := index[ref.MonthName]; ok {
			unique[i] = ref
			continue
		}
		index[ref.MonthName] = len(unique)
		unique = append(unique, ref)
	}

	entity.SortMonthRefs(unique)
	return unique, nil
}

func (s *queryServiceImpl) FormFiscalYears(ctx context.Context) ([]entity.FormFiscalYear, error) {
	years, err := s.formRepo.ListFiscalYearRefs(ctx)
	if err != nil {
		s.logger.Error("Failed to list form fiscal years", "error", err)
		return nil, entity.NewError(entity.KindDatabase, "Internal Server Error", err)
	}
	return years, nil
}

func (s *queryServiceImpl) ExportWorkbook(ctx context.Context, fyName, monthName string) ([]byte, error) {
	forms, err := s.ByFiscalYearMonth(ctx, fyName, monthName)
	if err != nil {
		return nil, err
	}

	data, err := export.FormsWorkbook(forms)
	if err != nil {
		s.logger.Error("Failed to render workbook", "error", err, "fy_name", fyName, "month", monthName)
		return nil, entity.NewError(entity.KindUnknown, "failed to render workbook", err)
	}

	s.logger.Info("Workbook exported", "fy_name", fyName, "month", monthName, "forms", len(forms))
	return data, nil
}

// parseNumber accepts decimal text; empty text is zero
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
