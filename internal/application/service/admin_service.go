package service

import (
	"context"
	"strings"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// AdminService toggles fiscal year and month activation.
// Inputs are pointers so a missing field can be told apart from an empty one.
type AdminService interface {
	SetFiscalYearActive(ctx context.Context, fyName *string, active bool) (*entity.FiscalYear, error)
	SetFiscalYearMonthActive(ctx context.Context, fyName, monthName *string, active bool) (*entity.FiscalYear, error)

	// SetMonthActive applies the flag to the month of every active fiscal year
	SetMonthActive(ctx context.Context, monthName *string, active bool) (*entity.MonthStatus, error)
}

type adminServiceImpl struct {
	fyRepo    port.FiscalYearRepository
	txManager port.TransactionManager
	logger    Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(fyRepo port.FiscalYearRepository, txManager port.TransactionManager, logger Logger) AdminService {
	return &adminServiceImpl{
		fyRepo:    fyRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (s *adminServiceImpl) SetFiscalYearActive(ctx context.Context, fyName *string, active bool) (*entity.FiscalYear, error) {
	if fyName == nil || strings.TrimSpace(*fyName) == "" {
		return nil, entity.ValidationError("Invalid input: fy_name must be a non-empty string")
	}
	name := strings.TrimSpace(*fyName)

	fy, err := s.fyRepo.SetActive(ctx, name, active)
	if err != nil {
		s.logger.Error("Failed to set fiscal year flag", "error", err, "fy_name", name)
		return nil, entity.NewError(entity.KindDatabase, "Error processing request", err)
	}

	s.logger.Info("Fiscal year flag set", "fy_name", name, "active", active)
	return fy, nil
}

func (s *adminServiceImpl) SetFiscalYearMonthActive(ctx context.Context, fyName, monthName *string, active bool) (*entity.FiscalYear, error) {
	if fyName == nil || monthName == nil {
		return nil, entity.ValidationError("Invalid input: fy_name and month_name must be strings")
	}

	fy, err := s.fyRepo.SetMonthActive(ctx, *fyName, *monthName, active)
	if err != nil {
		s.logger.Error("Failed to set month flag", "error", err, "fy_name", *fyName, "month_name", *monthName)
		return nil, entity.NewError(entity.KindDatabase, "Error processing request", err)
	}

	s.logger.Info("Fiscal year month flag set", "fy_name", *fyName, "month_name", *monthName, "active", active)
	return fy, nil
}

func (s *adminServiceImpl) SetMonthActive(ctx context.Context, monthName *string, active bool) (*entity.MonthStatus, error) {
	if monthName == nil {
		return nil, entity.ValidationError("Invalid input: month_name must be a string")
	}
	name := *monthName

	var updated int
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		years, err := s.fyRepo.ListActive(ctx)
		if err != nil {
			return err
		}
		for _, fy := range years {
			if _, err := s.fyRepo.SetMonthActive(ctx, fy.FyName, name, active); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to set month flag", "error", err, "month_name", name)
		return nil, entity.NewError(entity.KindDatabase, "Error processing request", err)
	}
	if updated == 0 {
		return nil, entity.ValidationError("Invalid input: no active fiscal year")
	}

	s.logger.Info("Month flag set on active fiscal years", "month_name", name, "active", active, "fiscal_years", updated)
	return &entity.MonthStatus{MonthName: name, MonthID: active}, nil
}
