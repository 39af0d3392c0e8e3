package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

type testLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *testLogger) Info(msg string, keysAndValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *testLogger) Error(msg string, keysAndValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

type mockFormRepo struct {
	forms      map[string]*entity.FormRecord
	createFunc func(ctx context.Context, form *entity.FormRecord) error
	listFunc   func(ctx context.Context, filter entity.FormFilter) ([]*entity.FormRecord, error)
	monthRefs  []entity.MonthRef
	lastFilter entity.FormFilter
	nextID     int
}

func newMockFormRepo() *mockFormRepo {
	return &mockFormRepo{forms: make(map[string]*entity.FormRecord)}
}

func (m *mockFormRepo) Create(ctx context.Context, form *entity.FormRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, form)
	}
	m.nextID++
	form.ID = fmt.Sprintf("form-%d", m.nextID)
	m.forms[form.ID] = form
	return nil
}

func (m *mockFormRepo) GetByID(ctx context.Context, id string) (*entity.FormRecord, error) {
	form, ok := m.forms[id]
	if !ok {
		return nil, nil
	}
	clone := *form
	return &clone, nil
}

func (m *mockFormRepo) Update(ctx context.Context, form *entity.FormRecord) (bool, error) {
	if _, ok := m.forms[form.ID]; !ok {
		return false, nil
	}
	m.forms[form.ID] = form
	return true, nil
}

func (m *mockFormRepo) Delete(ctx context.Context, id string) (*entity.FormRecord, error) {
	form, ok := m.forms[id]
	if !ok {
		return nil, nil
	}
	delete(m.forms, id)
	return form, nil
}

func (m *mockFormRepo) List(ctx context.Context, filter entity.FormFilter) ([]*entity.FormRecord, error) {
	m.lastFilter = filter
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*entity.FormRecord{}, nil
}

func (m *mockFormRepo) ListMonthRefs(ctx context.Context) ([]entity.MonthRef, error) {
	return m.monthRefs, nil
}

func (m *mockFormRepo) ListFiscalYearRefs(ctx context.Context) ([]entity.FormFiscalYear, error) {
	return []entity.FormFiscalYear{}, nil
}

type mockIngest struct {
	storeFunc func(ctx context.Context, files []port.UploadedFile) ([]string, error)
	removeErr error
	stored    []string
	removed   []string
}

func (m *mockIngest) Store(ctx context.Context, files []port.UploadedFile) ([]string, error) {
	if m.storeFunc != nil {
		return m.storeFunc(ctx, files)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, "1000-"+f.Filename)
	}
	m.stored = append(m.stored, names...)
	return names, nil
}

func (m *mockIngest) Remove(ctx context.Context, name string) error {
	m.removed = append(m.removed, name)
	return m.removeErr
}

type mockMerger struct {
	mergeFunc func(ctx context.Context, req port.MergeRequest) (*port.MergeResult, error)
	removeErr error
	requests  []port.MergeRequest
	removed   []string
}

func (m *mockMerger) Merge(ctx context.Context, req port.MergeRequest) (*port.MergeResult, error) {
	m.requests = append(m.requests, req)
	if m.mergeFunc != nil {
		return m.mergeFunc(ctx, req)
	}
	return &port.MergeResult{FileName: "merged.pdf", Pages: len(req.Files)}, nil
}

func (m *mockMerger) Remove(ctx context.Context, fileName string) error {
	m.removed = append(m.removed, fileName)
	return m.removeErr
}

type mockFiscalYearRepo struct {
	years map[string]*entity.FiscalYear
	order []string
	err   error
}

func newMockFiscalYearRepo() *mockFiscalYearRepo {
	return &mockFiscalYearRepo{years: make(map[string]*entity.FiscalYear)}
}

func (m *mockFiscalYearRepo) add(fy *entity.FiscalYear) {
	m.years[fy.FyName] = fy
	m.order = append(m.order, fy.FyName)
}

func (m *mockFiscalYearRepo) List(ctx context.Context) ([]*entity.FiscalYear, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*entity.FiscalYear, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.years[name])
	}
	return out, nil
}

func (m *mockFiscalYearRepo) ListActive(ctx context.Context) ([]*entity.FiscalYear, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.FiscalYear, 0)
	for _, fy := range all {
		if fy.FyID {
			out = append(out, fy)
		}
	}
	return out, nil
}

func (m *mockFiscalYearRepo) GetByName(ctx context.Context, fyName string) (*entity.FiscalYear, error) {
	return m.years[fyName], m.err
}

func (m *mockFiscalYearRepo) SetActive(ctx context.Context, fyName string, active bool) (*entity.FiscalYear, error) {
	if m.err != nil {
		return nil, m.err
	}
	fy, ok := m.years[fyName]
	if !ok {
		fy = &entity.FiscalYear{FyName: fyName}
		m.add(fy)
	}
	fy.FyID = active
	return fy, nil
}

func (m *mockFiscalYearRepo) SetMonthActive(ctx context.Context, fyName, monthName string, active bool) (*entity.FiscalYear, error) {
	if m.err != nil {
		return nil, m.err
	}
	fy, ok := m.years[fyName]
	if !ok {
		fy = &entity.FiscalYear{FyName: fyName}
		m.add(fy)
	}
	for i := range fy.Months {
		if fy.Months[i].MonthName == monthName {
			fy.Months[i].MonthID = active
			return fy, nil
		}
	}
	fy.Months = append(fy.Months, entity.MonthStatus{MonthName: monthName, MonthID: active})
	return fy, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockCredentialRepo struct {
	creds map[string]*entity.Credential
}

func (m *mockCredentialRepo) GetByUsername(ctx context.Context, username string) (*entity.Credential, error) {
	return m.creds[username], nil
}

func (m *mockCredentialRepo) Upsert(ctx context.Context, cred *entity.Credential) error {
	if m.creds == nil {
		m.creds = make(map[string]*entity.Credential)
	}
	m.creds[cred.Username] = cred
	return nil
}

type mockLookupRepo struct {
	departments []*entity.Department
	err         error
}

func (m *mockLookupRepo) ListDepartments(ctx context.Context) ([]*entity.Department, error) {
	return m.departments, m.err
}
func (m *mockLookupRepo) ListVehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	return []*entity.Vehicle{}, m.err
}
func (m *mockLookupRepo) ListEmployees(ctx context.Context) ([]*entity.Employee, error) {
	return []*entity.Employee{}, m.err
}
func (m *mockLookupRepo) ListHeadCategories(ctx context.Context) ([]*entity.HeadCategory, error) {
	return []*entity.HeadCategory{}, m.err
}
func (m *mockLookupRepo) ListSubCategories(ctx context.Context) ([]*entity.SubCategory, error) {
	return []*entity.SubCategory{}, m.err
}
func (m *mockLookupRepo) Save(ctx context.Context, collection entity.Collection, doc entity.Document) error {
	return m.err
}

func ptr(s string) *string { return &s }
