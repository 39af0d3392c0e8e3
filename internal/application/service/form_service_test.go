package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() *FormSubmission {
	return &FormSubmission{
		FyYear:      ptr(`{"_id":"fy1","fy_name":"2023-2024","fy_id":true}`),
		Month:       ptr(`{"month_name":"April","month_id":true}`),
		Type:        ptr(`"cash"`),
		HeadCat:     ptr(`{"head_cat_name":"Travel"}`),
		SubCat:      ptr(`{"sub_cat_name":"Fuel"}`),
		Date:        ptr("05-04-2023"),
		ReceivedBy:  ptr(`[{"emp_id":"E1","emp_name":"Ravi"}]`),
		Particulars: ptr("Diesel"),
		Departments: ptr(`[]`),
		Vehicles:    ptr(`[{"vehicle_id":3}]`),
		Bills:       ptr(`[{"bill_no":"B1","amount":100},{"bill_no":"B2","amount":"25.5"}]`),
		Files: []port.UploadedFile{
			{Filename: "a.pdf"},
			{Filename: "b.png"},
		},
	}
}

func newTestFormService(repo *mockFormRepo, ingest *mockIngest, merger *mockMerger) (*formServiceImpl, *testLogger) {
	logger := &testLogger{}
	svc := NewFormService(repo, ingest, merger, nil, logger).(*formServiceImpl)
	return svc, logger
}

func TestFormService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores files, merges and inserts", func(t *testing.T) {
		repo, ingest, merger := newMockFormRepo(), &mockIngest{}, &mockMerger{}
		svc, _ := newTestFormService(repo, ingest, merger)

		form, err := svc.Create(ctx, validSubmission())
		require.NoError(t, err)

		assert.Equal(t, "form-1", form.ID)
		assert.Equal(t, 125.5, form.TotalAmount)
		assert.Equal(t, []string{"1000-a.pdf", "1000-b.png"}, form.Files)
		assert.Equal(t, "merged.pdf", form.MergedPDF)
		require.NotNil(t, form.Type)
		assert.Equal(t, "cash", *form.Type)

		require.Len(t, merger.requests, 1)
		assert.Equal(t, []string{"B1", "B2"}, merger.requests[0].BillNos)
		assert.Equal(t, "05-04-2023", merger.requests[0].Date)
		assert.False(t, merger.requests[0].Native)
	})

	t.Run("non numeric amount counts as zero", func(t *testing.T) {
		repo := newMockFormRepo()
		svc, _ := newTestFormService(repo, &mockIngest{}, &mockMerger{})

		sub := validSubmission()
		sub.Bills = ptr(`[{"bill_no":"B1","amount":"abc"},{"bill_no":"B2","amount":7}]`)
		form, err := svc.Create(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, 7.0, form.TotalAmount)
	})

	t.Run("no files still merges", func(t *testing.T) {
		merger := &mockMerger{}
		svc, _ := newTestFormService(newMockFormRepo(), &mockIngest{}, merger)

		sub := validSubmission()
		sub.Files = nil
		form, err := svc.Create(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, "merged.pdf", form.MergedPDF)
		assert.Equal(t, []string{}, form.Files)
		require.Len(t, merger.requests, 1)
		assert.Empty(t, merger.requests[0].Files)
		assert.Equal(t, []string{"B1", "B2"}, merger.requests[0].BillNos)
	})

	t.Run("malformed json is a validation error", func(t *testing.T) {
		ingest := &mockIngest{}
		svc, _ := newTestFormService(newMockFormRepo(), ingest, &mockMerger{})

		sub := validSubmission()
		sub.FyYear = ptr(`{not json`)
		_, err := svc.Create(ctx, sub)
		require.Error(t, err)
		assert.Equal(t, entity.KindValidation, entity.KindOf(err))
		assert.Empty(t, ingest.stored)
	})

	t.Run("missing field is a validation error", func(t *testing.T) {
		svc, _ := newTestFormService(newMockFormRepo(), &mockIngest{}, &mockMerger{})

		sub := validSubmission()
		sub.Bills = nil
		_, err := svc.Create(ctx, sub)
		assert.Equal(t, entity.KindValidation, entity.KindOf(err))
	})

	t.Run("bill without number is rejected", func(t *testing.T) {
		svc, _ := newTestFormService(newMockFormRepo(), &mockIngest{}, &mockMerger{})

		sub := validSubmission()
		sub.Bills = ptr(`[{"amount":5}]`)
		_, err := svc.Create(ctx, sub)
		assert.Equal(t, entity.KindValidation, entity.KindOf(err))
	})

	t.Run("merge failure removes uploads", func(t *testing.T) {
		ingest := &mockIngest{}
		merger := &mockMerger{mergeFunc: func(ctx context.Context, req port.MergeRequest) (*port.MergeResult, error) {
			return nil, errors.New("corrupt pdf")
		}}
		repo := newMockFormRepo()
		svc, _ := newTestFormService(repo, ingest, merger)

		_, err := svc.Create(ctx, validSubmission())
		require.Error(t, err)
		assert.ElementsMatch(t, []string{"1000-a.pdf", "1000-b.png"}, ingest.removed)
		assert.Empty(t, repo.forms)
	})

	t.Run("insert failure removes uploads and merged pdf", func(t *testing.T) {
		ingest := &mockIngest{}
		merger := &mockMerger{}
		repo := newMockFormRepo()
		repo.createFunc = func(ctx context.Context, form *entity.FormRecord) error {
			return errors.New("disk full")
		}
		svc, logger := newTestFormService(repo, ingest, merger)

		_, err := svc.Create(ctx, validSubmission())
		require.Error(t, err)
		assert.Equal(t, entity.KindDatabase, entity.KindOf(err))
		assert.Len(t, ingest.removed, 2)
		assert.Equal(t, []string{"merged.pdf"}, merger.removed)
		assert.NotEmpty(t, logger.errors)
	})
}

func TestFormService_Modify(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *mockFormRepo) *entity.FormRecord {
		cash := "cash"
		form := &entity.FormRecord{
			ID:          "f1",
			Type:        &cash,
			Date:        "01-04-2023",
			Particulars: "old",
			Files:       []string{"old.pdf"},
			MergedPDF:   "old_merged.pdf",
			Bills:       []entity.Bill{{BillNo: "B0", Amount: 1}},
			TotalAmount: 1,
		}
		repo.forms["f1"] = form
		return form
	}

	t.Run("id is required", func(t *testing.T) {
		svc, _ := newTestFormService(newMockFormRepo(), &mockIngest{}, &mockMerger{})
		_, err := svc.Modify(ctx, &FormSubmission{})
		require.Error(t, err)
		assert.Equal(t, entity.KindValidation, entity.KindOf(err))
		assert.Equal(t, "ID is required to modify the form.", err.Error())
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newTestFormService(newMockFormRepo(), &mockIngest{}, &mockMerger{})
		_, err := svc.Modify(ctx, &FormSubmission{ID: ptr("nope")})
		assert.Equal(t, entity.KindNotFound, entity.KindOf(err))
	})

	t.Run("without files keeps stored files", func(t *testing.T) {
		repo := newMockFormRepo()
		seed(repo)
		merger := &mockMerger{}
		svc, _ := newTestFormService(repo, &mockIngest{}, merger)

		form, err := svc.Modify(ctx, &FormSubmission{
			ID:     ptr("f1"),
			FyYear: ptr(`{broken`),
			Month:  ptr(`{"month_name":"May"}`),
			Bills:  ptr(`[{"bill_no":"B9","amount":40}]`),
		})
		require.NoError(t, err)

		assert.Nil(t, form.FyYear)
		assert.Equal(t, "May", form.Month.MonthName)
		assert.Equal(t, []string{"old.pdf"}, form.Files)
		assert.Equal(t, "old_merged.pdf", form.MergedPDF)
		assert.Equal(t, 40.0, form.TotalAmount)
		assert.Equal(t, "01-04-2023", form.Date)
		assert.Equal(t, "old", form.Particulars)
		assert.Equal(t, "cash", *form.Type)
		assert.Empty(t, merger.requests)
	})

	t.Run("files replace stored files with native layout", func(t *testing.T) {
		repo := newMockFormRepo()
		seed(repo)
		ingest := &mockIngest{}
		merger := &mockMerger{}
		svc, _ := newTestFormService(repo, ingest, merger)

		form, err := svc.Modify(ctx, &FormSubmission{
			ID:    ptr("f1"),
			Type:  ptr("card"),
			Bills: ptr(`[{"bill_no":"B9","amount":40}]`),
			Files: []port.UploadedFile{{Filename: "new.jpg"}},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"1000-new.jpg"}, form.Files)
		assert.Equal(t, "merged.pdf", form.MergedPDF)
		assert.Equal(t, "card", *form.Type)
		require.Len(t, merger.requests, 1)
		assert.True(t, merger.requests[0].Native)
		assert.Equal(t, "01-04-2023", merger.requests[0].Date)
		assert.Empty(t, ingest.removed)
	})

	t.Run("missing date uses today in merged name", func(t *testing.T) {
		repo := newMockFormRepo()
		f := seed(repo)
		f.Date = ""
		merger := &mockMerger{}
		svc, _ := newTestFormService(repo, &mockIngest{}, merger)
		svc.now = func() time.Time { return time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC) }

		_, err := svc.Modify(ctx, &FormSubmission{ID: ptr("f1"), Files: []port.UploadedFile{{Filename: "x.pdf"}}})
		require.NoError(t, err)
		assert.Equal(t, "2024-02-03", merger.requests[0].Date)
	})

	t.Run("merge without pages still replaces merged pdf", func(t *testing.T) {
		repo := newMockFormRepo()
		seed(repo)
		merger := &mockMerger{mergeFunc: func(ctx context.Context, req port.MergeRequest) (*port.MergeResult, error) {
			return &port.MergeResult{FileName: "blank.pdf", Skipped: req.Files}, nil
		}}
		svc, _ := newTestFormService(repo, &mockIngest{}, merger)

		form, err := svc.Modify(ctx, &FormSubmission{ID: ptr("f1"), Files: []port.UploadedFile{{Filename: "x.txt"}}})
		require.NoError(t, err)
		assert.Equal(t, "blank.pdf", form.MergedPDF)
		assert.Equal(t, []string{"1000-x.txt"}, form.Files)
	})

	t.Run("sent empty text fields overwrite", func(t *testing.T) {
		repo := newMockFormRepo()
		seed(repo)
		svc, _ := newTestFormService(repo, &mockIngest{}, &mockMerger{})

		form, err := svc.Modify(ctx, &FormSubmission{
			ID:          ptr("f1"),
			Particulars: ptr(""),
			Date:        ptr(""),
		})
		require.NoError(t, err)
		assert.Empty(t, form.Particulars)
		assert.Empty(t, form.Date)
		assert.Equal(t, "cash", *form.Type, "unsent fields are kept")
	})
}

func TestFormService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := newMockFormRepo()
	repo.forms["f1"] = &entity.FormRecord{ID: "f1", Files: []string{"a.pdf", "b.png"}, MergedPDF: "m.pdf"}
	ingest := &mockIngest{}
	merger := &mockMerger{}
	svc, _ := newTestFormService(repo, ingest, merger)

	form, err := svc.Delete(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", form.ID)
	assert.Equal(t, []string{"m.pdf"}, merger.removed)
	assert.Equal(t, []string{"a.pdf", "b.png"}, ingest.removed)

	_, err = svc.Delete(ctx, "f1")
	assert.Equal(t, entity.KindNotFound, entity.KindOf(err))
	assert.Equal(t, "Data not found", err.Error())
}

func TestFormService_DeleteMissingFiles(t *testing.T) {
	ctx := context.Background()

	repo := newMockFormRepo()
	repo.forms["f1"] = &entity.FormRecord{ID: "f1", Files: []string{"a.pdf"}, MergedPDF: "m.pdf"}
	gone := fmt.Errorf("failed to delete file: %w", os.ErrNotExist)
	ingest := &mockIngest{removeErr: gone}
	merger := &mockMerger{removeErr: gone}
	svc, logger := newTestFormService(repo, ingest, merger)

	form, err := svc.Delete(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", form.ID)
	assert.NotContains(t, repo.forms, "f1")
	assert.Equal(t, []string{"m.pdf"}, merger.removed)
	assert.Equal(t, []string{"a.pdf"}, ingest.removed)
	assert.Empty(t, logger.errors)
}

func TestFormService_Get(t *testing.T) {
	repo := newMockFormRepo()
	repo.forms["f1"] = &entity.FormRecord{ID: "f1"}
	svc, _ := newTestFormService(repo, &mockIngest{}, &mockMerger{})

	form, err := svc.Get(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", form.ID)

	_, err = svc.Get(context.Background(), "f2")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}
