package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupService_FiscalYears(t *testing.T) {
	ctx := context.Background()
	fyRepo := newMockFiscalYearRepo()
	fyRepo.add(&entity.FiscalYear{ID: "b", FyName: "2024-2025", FyID: true, Months: []entity.MonthStatus{
		{MonthName: "May", MonthID: true},
		{MonthName: "April", MonthID: false},
	}})
	fyRepo.add(&entity.FiscalYear{ID: "a", FyName: "2023-2024", FyID: true, Months: []entity.MonthStatus{
		{MonthName: "June", MonthID: true},
		{MonthName: "April", MonthID: true},
	}})
	fyRepo.add(&entity.FiscalYear{ID: "c", FyName: "2022-2023", FyID: false, Months: []entity.MonthStatus{
		{MonthName: "January", MonthID: true},
	}})
	svc := NewLookupService(&mockLookupRepo{}, fyRepo, &testLogger{})

	t.Run("options sorted by start year", func(t *testing.T) {
		options, err := svc.FiscalYearOptions(ctx)
		require.NoError(t, err)
		require.Len(t, options, 3)
		assert.Equal(t, "2022-2023", options[0].FyName)
		assert.Equal(t, "2023-2024", options[1].FyName)
		assert.Equal(t, "2024-2025", options[2].FyName)
	})

	t.Run("active months of a fiscal year", func(t *testing.T) {
		fy, err := svc.ActiveMonths(ctx, "2023-2024")
		require.NoError(t, err)
		assert.Equal(t, []entity.MonthStatus{
			{MonthName: "April", MonthID: true},
			{MonthName: "June", MonthID: true},
		}, fy.Months)
	})

	t.Run("unknown fiscal year", func(t *testing.T) {
		_, err := svc.ActiveMonths(ctx, "1999-2000")
		assert.Equal(t, entity.KindNotFound, entity.KindOf(err))
		assert.Equal(t, "Financial year not found", err.Error())
	})

	t.Run("month view derives from active fiscal years", func(t *testing.T) {
		months, err := svc.Months(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entity.MonthStatus{
			{MonthName: "April", MonthID: true},
			{MonthName: "May", MonthID: true},
			{MonthName: "June", MonthID: true},
		}, months)
	})
}

func TestLookupService_Errors(t *testing.T) {
	svc := NewLookupService(&mockLookupRepo{err: errors.New("db down")}, newMockFiscalYearRepo(), &testLogger{})

	_, err := svc.Departments(context.Background())
	require.Error(t, err)
	assert.Equal(t, entity.KindDatabase, entity.KindOf(err))
	assert.Contains(t, err.Error(), "Failed to retrieve department")
}
