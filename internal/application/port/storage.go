package port

import (
	"context"
	"io"
)

// FileStorage defines file storage operations on paths relative to the store root
type FileStorage interface {
	Save(ctx context.Context, path string, content []byte) error
	SaveStream(ctx context.Context, path string, r io.Reader) (int64, error)
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error
	GetFullPath(relativePath string) string
}

// UploadedFile is one multipart file part
type UploadedFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Ingest writes uploaded parts into the upload area
type Ingest interface {
	// Store writes files in order and returns their stored names.
	// On failure every file already written by the call is removed.
	Store(ctx context.Context, files []UploadedFile) ([]string, error)

	// Remove deletes one stored upload
	Remove(ctx context.Context, name string) error
}

// MergeRequest describes one merge of stored uploads
type MergeRequest struct {
	Files   []string
	BillNos []string
	Date    string
	Native  bool
}

// MergeResult reports the merged output
type MergeResult struct {
	// FileName names the written output; Pages is 0 when it only holds a blank page
	FileName string
	Pages    int
	Skipped  []string
}

// PDFMerger merges stored uploads into one PDF in the merged area
type PDFMerger interface {
	Merge(ctx context.Context, req MergeRequest) (*MergeResult, error)
	Remove(ctx context.Context, fileName string) error
}

// MetricsRecorder receives pipeline events
type MetricsRecorder interface {
	ObserveMerge(pages, skipped int, err error)
	ObserveUploads(count int)
	ObserveCleanup(area string, err error)
}
