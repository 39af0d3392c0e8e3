package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// Logger is the logging interface used by services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// FormService manages the form lifecycle: uploads, merged PDF and record
type FormService interface {
	Create(ctx context.Context, sub *FormSubmission) (*entity.FormRecord, error)
	Modify(ctx context.Context, sub *FormSubmission) (*entity.FormRecord, error)
	Delete(ctx context.Context, id string) (*entity.FormRecord, error)
	Get(ctx context.Context, id string) (*entity.FormRecord, error)
	List(ctx context.Context) ([]*entity.FormRecord, error)
}

type formServiceImpl struct {
	formRepo port.FormRepository
	ingest   port.Ingest
	merger   port.PDFMerger
	metrics  port.MetricsRecorder
	logger   Logger
	now      func() time.Time
}

// NewFormService creates a new FormService. metrics may be nil.
func NewFormService(
	formRepo port.FormRepository,
	ingest port.Ingest,
	merger port.PDFMerger,
	metrics port.MetricsRecorder,
	logger Logger,
) FormService {
	return &formServiceImpl{
		formRepo: formRepo,
		ingest:   ingest,
		merger:   merger,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Create stores the uploads, merges them and inserts the record.
// A failing step removes the files written by earlier steps.
func (s *formServiceImpl) Create(ctx context.Context, sub *FormSubmission) (*entity.FormRecord, error) {
	form, err := parseStrict(sub)
	if err != nil {
		s.logger.Error("Rejected form submission", "error", err)
		return nil, err
	}

	names, merged, err := s.storeAndMerge(ctx, sub.Files, form.Bills, form.Date, false)
	if err != nil {
		return nil, err
	}

	form.Files = names
	form.MergedPDF = merged

	if err := s.formRepo.Create(ctx, form); err != nil {
		s.logger.Error("Failed to insert form, removing its files", "error", err, "files", len(names))
		s.compensate(ctx, names, merged)
		return nil, entity.NewError(entity.KindDatabase, "failed to save form", err)
	}

	s.logger.Info("Form created",
		"id", form.ID,
		"files", len(names),
		"merged_pdf", merged,
		"total_amount", form.TotalAmount)
	return form, nil
}

// Modify replaces the record fields. Attached files replace the stored file list and
// merged PDF; the previous files stay on disk.
func (s *formServiceImpl) Modify(ctx context.Context, sub *FormSubmission) (*entity.FormRecord, error) {
	if sub.ID == nil || *sub.ID == "" {
		return nil, entity.ValidationError("ID is required to modify the form.")
	}
	id := *sub.ID

	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.NewError(entity.KindDatabase, "failed to load form", err)
	}
	if form == nil {
		return nil, entity.NotFoundError("Form not found.")
	}

	if err := applyLenient(form, sub); err != nil {
		return nil, err
	}

	var names []string
	var merged string
	if len(sub.Files) > 0 {
		date := form.Date
		if date == "" {
			date = s.now().Format("2006-01-02")
		}

		names, merged, err = s.storeAndMerge(ctx, sub.Files, form.Bills, date, true)
		if err != nil {
			return nil, err
		}

		form.Files = names
		form.MergedPDF = merged
	}

	found, err := s.formRepo.Update(ctx, form)
	if err != nil || !found {
		s.compensate(ctx, names, merged)
		if err != nil {
			s.logger.Error("Failed to update form", "error", err, "id", id)
			return nil, entity.NewError(entity.KindDatabase, "failed to update form", err)
		}
		return nil, entity.NotFoundError("Form not found.")
	}

	s.logger.Info("Form modified", "id", id, "new_files", len(names), "merged_pdf", form.MergedPDF)
	return form, nil
}

// Delete removes the record, then its merged PDF and uploads. Missing files are logged.
func (s *formServiceImpl) Delete(ctx context.Context, id string) (*entity.FormRecord, error) {
	form, err := s.formRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete form", "error", err, "id", id)
		return nil, entity.NewError(entity.KindDatabase, "failed to delete form", err)
	}
	if form == nil {
		return nil, entity.NotFoundError("Data not found")
	}

	if form.MergedPDF != "" {
		err := s.merger.Remove(ctx, form.MergedPDF)
		s.logRemoval(entity.AreaMerged, form.MergedPDF, err)
	}
	for _, name := range form.Files {
		err := s.ingest.Remove(ctx, name)
		s.logRemoval(entity.AreaUploads, name, err)
	}

	s.logger.Info("Form deleted", "id", id, "files", len(form.Files))
	return form, nil
}

// Get returns a form by id
func (s *formServiceImpl) Get(ctx context.Context, id string) (*entity.FormRecord, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.NewError(entity.KindDatabase, "failed to load form", err)
	}
	if form == nil {
		return nil, entity.NotFoundError("Form not found")
	}
	return form, nil
}

// List returns every form
func (s *formServiceImpl) List(ctx context.Context) ([]*entity.FormRecord, error) {
	forms, err := s.formRepo.List(ctx, entity.FormFilter{})
	if err != nil {
		return nil, entity.NewError(entity.KindDatabase, "failed to list forms", err)
	}
	return forms, nil
}

// storeAndMerge writes the uploads and merges them, even when there are none.
// On merge failure the uploads are removed.
func (s *formServiceImpl) storeAndMerge(ctx context.Context, files []port.UploadedFile, bills []entity.Bill, date string, native bool) ([]string, string, error) {
	names, err := s.ingest.Store(ctx, files)
	if err != nil {
		s.logger.Error("Failed to store uploads", "error", err, "count", len(files))
		return nil, "", err
	}
	if s.metrics != nil {
		s.metrics.ObserveUploads(len(names))
	}

	result, err := s.merger.Merge(ctx, port.MergeRequest{
		Files:   names,
		BillNos: entity.BillNumbers(bills),
		Date:    date,
		Native:  native,
	})
	if err != nil {
		s.logger.Error("Failed to merge uploads, removing them", "error", err, "files", len(names))
		s.compensate(ctx, names, "")
		return nil, "", err
	}

	if len(result.Skipped) > 0 {
		s.logger.Info("Some uploads produced no pages", "skipped", result.Skipped)
	}
	return names, result.FileName, nil
}

// compensate removes files written earlier in a failed request
func (s *formServiceImpl) compensate(ctx context.Context, names []string, merged string) {
	ctx = context.WithoutCancel(ctx)
	for _, name := range names {
		s.logRemoval(entity.AreaUploads, name, s.ingest.Remove(ctx, name))
	}
	if merged != "" {
		s.logRemoval(entity.AreaMerged, merged, s.merger.Remove(ctx, merged))
	}
}

func (s *formServiceImpl) logRemoval(area, name string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveCleanup(area, err)
	}
	switch {
	case err == nil:
		s.logger.Info("Removed file", "area", area, "file", name)
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("File already gone", "area", area, "file", name)
	default:
		s.logger.Error("Failed to remove file", "area", area, "file", name, "error", err)
	}
}
