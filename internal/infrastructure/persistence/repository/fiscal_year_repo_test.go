package repository

import (
	"context"
	"testing"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiscalYearRepository(t *testing.T) {
	db, logger := openTestDB(t)
	repo := NewFiscalYearRepository(db.DB, newTxManager(db, logger), logger)
	ctx := context.Background()

	t.Run("set active upserts", func(t *testing.T) {
		fy, err := repo.SetActive(ctx, "2023-2024", true)
		require.NoError(t, err)
		require.NotNil(t, fy)
		assert.True(t, fy.FyID)
		assert.Empty(t, fy.Months)

		fy, err = repo.SetActive(ctx, "2023-2024", false)
		require.NoError(t, err)
		assert.False(t, fy.FyID)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("month flags append in order", func(t *testing.T) {
		_, err := repo.SetMonthActive(ctx, "2023-2024", "May", true)
		require.NoError(t, err)
		fy, err := repo.SetMonthActive(ctx, "2023-2024", "April", false)
		require.NoError(t, err)

		assert.Equal(t, []entity.MonthStatus{
			{MonthName: "May", MonthID: true},
			{MonthName: "April", MonthID: false},
		}, fy.Months)

		fy, err = repo.SetMonthActive(ctx, "2023-2024", "May", false)
		require.NoError(t, err)
		assert.False(t, fy.Months[0].MonthID)
	})

	t.Run("month toggle creates inactive year", func(t *testing.T) {
		fy, err := repo.SetMonthActive(ctx, "2024-2025", "June", true)
		require.NoError(t, err)
		assert.False(t, fy.FyID)
		require.Len(t, fy.Months, 1)
	})

	t.Run("list active", func(t *testing.T) {
		_, err := repo.SetActive(ctx, "2024-2025", true)
		require.NoError(t, err)

		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "2024-2025", active[0].FyName)
		assert.Equal(t, "June", active[0].Months[0].MonthName)
	})

	t.Run("missing name", func(t *testing.T) {
		fy, err := repo.GetByName(ctx, "1999-2000")
		require.NoError(t, err)
		assert.Nil(t, fy)
	})
}

func TestLookupRepository(t *testing.T) {
	db, logger := openTestDB(t)
	repo := NewLookupRepository(db.DB, logger)
	ctx := context.Background()

	dept := &entity.Department{DeptID: 1, DeptFullName: "Accounts", DeptShortName: "ACC"}
	require.NoError(t, repo.Save(ctx, entity.CollectionDepartments, dept))
	require.NotEmpty(t, dept.ID)
	require.NoError(t, repo.Save(ctx, entity.CollectionVehicles, &entity.Vehicle{VehicleID: 3, VehicleName: "Van"}))

	depts, err := repo.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, dept.ID, depts[0].ID)
	assert.Equal(t, "Accounts", depts[0].DeptFullName)

	vehicles, err := repo.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, float64(3), vehicles[0].VehicleID)

	employees, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.NotNil(t, employees)
	assert.Empty(t, employees)
}

func TestCredentialRepository(t *testing.T) {
	db, logger := openTestDB(t)
	repo := NewCredentialRepository(db.DB, logger)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entity.Credential{Username: "admin", PasswordHash: "h1", Admin: true}))
	require.NoError(t, repo.Upsert(ctx, &entity.Credential{Username: "admin", PasswordHash: "h2", Admin: false}))

	cred, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "h2", cred.PasswordHash)
	assert.False(t, cred.Admin)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
