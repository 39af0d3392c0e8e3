// Package seed loads lookup collections, fiscal years and signin accounts from a YAML file.
package seed

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/service"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// File is the seed document
type File struct {
	Users          []User                 `yaml:"users"`
	Departments    []*entity.Department   `yaml:"departments"`
	Vehicles       []*entity.Vehicle      `yaml:"vehicles"`
	Employees      []*entity.Employee     `yaml:"employees"`
	HeadCategories []*entity.HeadCategory `yaml:"head_categories"`
	SubCategories  []*entity.SubCategory  `yaml:"sub_categories"`
	FiscalYears    []FiscalYear           `yaml:"fiscal_years"`
}

// User is a signin account; the password is hashed on registration
type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Admin    bool   `yaml:"admin"`
}

// FiscalYear is a fiscal year with its month flags
type FiscalYear struct {
	FyName string               `yaml:"fy_name"`
	Active bool                 `yaml:"active"`
	Months []entity.MonthStatus `yaml:"months"`
}

// Summary counts what Apply wrote
type Summary struct {
	Users       int
	Lookups     int
	FiscalYears int
	Months      int
}

// Load reads a seed file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document and checks required names
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed file: %w", err)
	}

	for i, fy := range f.FiscalYears {
		if fy.FyName == "" {
			return nil, fmt.Errorf("fiscal_years[%d]: fy_name is required", i)
		}
		for j, m := range fy.Months {
			if entity.MonthIndex(m.MonthName) < 0 {
				return nil, fmt.Errorf("fiscal_years[%d].months[%d]: unknown month %q", i, j, m.MonthName)
			}
		}
	}
	for i, u := range f.Users {
		if u.Username == "" || u.Password == "" {
			return nil, fmt.Errorf("users[%d]: username and password are required", i)
		}
	}

	return &f, nil
}

// Seeder writes a seed File into the stores
type Seeder struct {
	auth        service.AuthService
	lookups     port.LookupRepository
	fiscalYears port.FiscalYearRepository
	tx          port.TransactionManager
	logger      *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(
	auth service.AuthService,
	lookups port.LookupRepository,
	fiscalYears port.FiscalYearRepository,
	tx port.TransactionManager,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		auth:        auth,
		lookups:     lookups,
		fiscalYears: fiscalYears,
		tx:          tx,
		logger:      logger,
	}
}

// Apply writes f. Accounts and fiscal years are upserted, so Apply can be rerun;
// a lookup collection that already holds documents is left untouched.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Summary, error) {
	summary := &Summary{}

	for _, u := range f.Users {
		if err := s.auth.Register(ctx, u.Username, u.Password, u.Admin); err != nil {
			return summary, fmt.Errorf("register %s: %w", u.Username, err)
		}
		summary.Users++
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		steps := []func() (int, error){
			func() (int, error) {
				return seedCollection(ctx, s, entity.CollectionDepartments, f.Departments, s.lookups.ListDepartments)
			},
			func() (int, error) {
				return seedCollection(ctx, s, entity.CollectionVehicles, f.Vehicles, s.lookups.ListVehicles)
			},
			func() (int, error) {
				return seedCollection(ctx, s, entity.CollectionEmployees, f.Employees, s.lookups.ListEmployees)
			},
			func() (int, error) {
				return seedCollection(ctx, s, entity.CollectionHeadCategories, f.HeadCategories, s.lookups.ListHeadCategories)
			},
			func() (int, error) {
				return seedCollection(ctx, s, entity.CollectionSubCategories, f.SubCategories, s.lookups.ListSubCategories)
			},
		}
		for _, step := range steps {
			n, err := step()
			if err != nil {
				return err
			}
			summary.Lookups += n
		}

		for _, fy := range f.FiscalYears {
			if _, err := s.fiscalYears.SetActive(ctx, fy.FyName, fy.Active); err != nil {
				return fmt.Errorf("fiscal year %s: %w", fy.FyName, err)
			}
			for _, m := range fy.Months {
				if _, err := s.fiscalYears.SetMonthActive(ctx, fy.FyName, m.MonthName, m.MonthID); err != nil {
					return fmt.Errorf("fiscal year %s month %s: %w", fy.FyName, m.MonthName, err)
				}
				summary.Months++
			}
			summary.FiscalYears++
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	s.logger.Info("Seed applied",
		zap.Int("users", summary.Users),
		zap.Int("lookups", summary.Lookups),
		zap.Int("fiscal_years", summary.FiscalYears),
		zap.Int("months", summary.Months))
	return summary, nil
}

func seedCollection[T entity.Document](
	ctx context.Context,
	s *Seeder,
	collection entity.Collection,
	docs []T,
	list func(context.Context) ([]T, error),
) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	existing, err := list(ctx)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", collection, err)
	}
	if len(existing) > 0 {
		s.logger.Info("Collection already seeded, skipping",
			zap.String("collection", string(collection)),
			zap.Int("existing", len(existing)))
		return 0, nil
	}

	for _, doc := range docs {
		if err := s.lookups.Save(ctx, collection, doc); err != nil {
			return 0, fmt.Errorf("save %s: %w", collection, err)
		}
	}
	return len(docs), nil
}
