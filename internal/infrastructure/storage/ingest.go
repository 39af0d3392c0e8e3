package storage

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"go.uber.org/zap"
)

// UploadIngest writes multipart uploads into the upload area
type UploadIngest struct {
	storage  port.FileStorage
	area     string
	maxFiles int
	now      func() time.Time
	logger   *zap.Logger
}

// NewUploadIngest creates an ingest writing into area of storage
func NewUploadIngest(storage port.FileStorage, area string, maxFiles int, logger *zap.Logger) *UploadIngest {
	if maxFiles <= 0 {
		maxFiles = entity.MaxUploadFiles
	}
	return &UploadIngest{
		storage:  storage,
		area:     area,
		maxFiles: maxFiles,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the clock used for name prefixes
func (i *UploadIngest) WithClock(now func() time.Time) *UploadIngest {
	i.now = now
	return i
}

// StoredName builds the {unixMillis}-{basename} file name
func StoredName(at time.Time, original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + base
}

// Store writes files in input order and returns their stored names.
// Any failure removes the files this call already wrote.
func (i *UploadIngest) Store(ctx context.Context, files []port.UploadedFile) ([]string, error) {
	if len(files) > i.maxFiles {
		return nil, entity.ValidationError("too many files: %d (max %d)", len(files), i.maxFiles)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			i.rollback(names)
			return nil, err
		}

		name := StoredName(i.now(), file.Filename)
		if err := i.write(ctx, name, file); err != nil {
			i.logger.Error("Upload ingest failed, removing written files",
				zap.String("file", file.Filename),
				zap.Int("written", len(names)),
				zap.Error(err))
			i.rollback(names)
			return nil, entity.NewError(entity.KindStorage, "failed to store upload", err)
		}
		names = append(names, name)
	}

	i.logger.Info("Uploads stored", zap.Int("count", len(names)))
	return names, nil
}

func (i *UploadIngest) write(ctx context.Context, name string, file port.UploadedFile) error {
	if file.Open == nil {
		return fmt.Errorf("upload %s has no content", file.Filename)
	}
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", file.Filename, err)
	}
	defer rc.Close()

	_, err = i.storage.SaveStream(ctx, path.Join(i.area, name), rc)
	return err
}

// Remove deletes one stored upload
func (i *UploadIngest) Remove(ctx context.Context, name string) error {
	return i.storage.Delete(ctx, path.Join(i.area, name))
}

func (i *UploadIngest) rollback(names []string) {
	for _, name := range names {
		if err := i.Remove(context.Background(), name); err != nil {
			i.logger.Warn("Failed to remove upload during rollback", zap.String("file", name), zap.Error(err))
		}
	}
}

var _ port.Ingest = (*UploadIngest)(nil)
