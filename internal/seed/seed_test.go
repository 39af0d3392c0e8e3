package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/container"
)

const sample = `
users:
  - username: admin
    password: admin123
    admin: true
departments:
  - dept_id: 1
    dept_full_name: Operations
    dept_short_name: OPS
    spl_id: 10
vehicles:
  - vehicle_id: 12
    vehicle_name: Van
    vehicle_nmber: "7"
    vehicle_reg_number: TN-01-AB-1234
employees:
  - emp_id: E1
    emp_name: Asha
    emp_status: active
head_categories:
  - head_cat_id: 1
    head_cat_name: Travel
    head_cat_status: true
sub_categories:
  - sub_cat_id: 3
    head_cat_id: 1
    sub_cat_name: Fuel
    sub_cat_status: true
fiscal_years:
  - fy_name: 2024-2025
    active: true
    months:
      - month_name: April
        month_id: true
      - month_name: May
        month_id: false
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, f.Users, 1)
	assert.True(t, f.Users[0].Admin)
	require.Len(t, f.Vehicles, 1)
	assert.Equal(t, "7", f.Vehicles[0].VehicleNumber)
	assert.Equal(t, 12.0, f.Vehicles[0].VehicleID)
	require.Len(t, f.FiscalYears, 1)
	assert.Len(t, f.FiscalYears[0].Months, 2)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"bad yaml", "users: [", "failed to unmarshal"},
		{"unknown month", "fiscal_years:\n  - fy_name: x\n    months:\n      - month_name: Smarch\n", "unknown month"},
		{"nameless fiscal year", "fiscal_years:\n  - active: true\n", "fy_name is required"},
		{"user without password", "users:\n  - username: a\n", "username and password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSeeder_Apply(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := container.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "office.db")
	cfg.Storage.BaseDir = filepath.Join(dir, "public")
	cfg.Auth.BcryptCost = bcrypt.MinCost

	c, err := container.NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { _ = c.Close() })

	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	f, err := Load(path)
	require.NoError(t, err)

	repos := c.Repositories()
	seeder := NewSeeder(c.Services().Auth, repos.Lookups, repos.FiscalYears, c.TransactionManager(), zap.NewNop())

	summary, err := seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 1, Lookups: 5, FiscalYears: 1, Months: 2}, summary)

	// rerun leaves lookups alone
	summary, err = seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Lookups)

	departments, err := repos.Lookups.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.NotEmpty(t, departments[0].ID)

	fy, err := c.Services().Lookups.ActiveMonths(ctx, "2024-2025")
	require.NoError(t, err)
	require.Len(t, fy.Months, 1)
	assert.Equal(t, "April", fy.Months[0].MonthName)

	res, err := c.Services().Auth.Signin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, res.Admin)
}
