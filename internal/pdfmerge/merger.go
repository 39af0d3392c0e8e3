package pdfmerge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path"
	"strings"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

var (
	// ErrNoPages is returned by Combine when no input produced a page
	ErrNoPages = errors.New("no pages to merge")
	// ErrDocumentLoad is returned when an input PDF cannot be opened
	ErrDocumentLoad = errors.New("failed to load pdf document")
)

func init() {
	// pdfcpu otherwise writes its config into the user config dir
	api.DisableConfigDir()
}

// Input is one file to merge
type Input struct {
	Name string
	Data []byte
}

// Combined is the output of Combine
type Combined struct {
	PDF     []byte
	Pages   int
	Skipped []string
}

// Config holds merger configuration
type Config struct {
	UploadArea string
	MergedArea string
}

// Merger implements port.PDFMerger over a file store
type Merger struct {
	storage port.FileStorage
	config  Config
	metrics port.MetricsRecorder
	logger  *zap.Logger
	randN   func(n int) int
}

// NewMerger creates a new merger. metrics may be nil.
func NewMerger(storage port.FileStorage, config Config, metrics port.MetricsRecorder, logger *zap.Logger) *Merger {
	if config.UploadArea == "" {
		config.UploadArea = entity.AreaUploads
	}
	if config.MergedArea == "" {
		config.MergedArea = entity.AreaMerged
	}
	return &Merger{
		storage: storage,
		config:  config,
		metrics: metrics,
		logger:  logger,
		randN:   rand.IntN,
	}
}

// OutputName builds {bill_nos joined by "_"}_{date}_{rand}.pdf
func OutputName(billNos []string, date string, n int) string {
	clean := strings.NewReplacer("/", "-", "\\", "-")
	return fmt.Sprintf("%s_%s_%d.pdf",
		clean.Replace(strings.Join(billNos, "_")),
		clean.Replace(date),
		n)
}

// Merge reads the stored uploads, combines them and writes the result to the merged area.
// A merged file is always written; when no input produced a page it holds one blank
// A4 page and the result reports zero Pages.
func (m *Merger) Merge(ctx context.Context, req port.MergeRequest) (*port.MergeResult, error) {
	inputs := make([]Input, 0, len(req.Files))
	for _, name := range req.Files {
		if Classify(name) == entity.InputKindSkipped {
			inputs = append(inputs, Input{Name: name})
			continue
		}
		data, err := m.storage.Read(ctx, path.Join(m.config.UploadArea, name))
		if err != nil {
			m.observe(0, 0, err)
			return nil, entity.NewError(entity.KindStorage, "failed to read upload "+name, err)
		}
		inputs = append(inputs, Input{Name: name, Data: data})
	}

	layout := LayoutFitA4
	if req.Native {
		layout = LayoutNative
	}

	combined, err := m.Combine(ctx, inputs, layout)
	if errors.Is(err, ErrNoPages) {
		m.logger.Info("Merge produced no pages, writing a blank page", zap.Int("inputs", len(inputs)))
		combined.PDF, err = blankPage()
	}
	if err != nil {
		m.observe(0, 0, err)
		return nil, err
	}

	fileName := OutputName(req.BillNos, req.Date, m.randN(10000))
	if err := m.storage.Save(ctx, path.Join(m.config.MergedArea, fileName), combined.PDF); err != nil {
		m.observe(0, 0, err)
		return nil, entity.NewError(entity.KindStorage, "failed to write merged pdf", err)
	}

	m.observe(combined.Pages, len(combined.Skipped), nil)
	m.logger.Info("Merged pdf written",
		zap.String("file", fileName),
		zap.Int("pages", combined.Pages),
		zap.Int("skipped", len(combined.Skipped)),
		zap.String("layout", layout.String()))

	return &port.MergeResult{
		FileName: fileName,
		Pages:    combined.Pages,
		Skipped:  combined.Skipped,
	}, nil
}

// Remove deletes a merged output
func (m *Merger) Remove(ctx context.Context, fileName string) error {
	return m.storage.Delete(ctx, path.Join(m.config.MergedArea, fileName))
}

// Combine turns inputs into one PDF in input order.
// Images that fail to decode and unknown extensions are skipped; a PDF that fails to load
// fails the whole call with ErrDocumentLoad. ErrNoPages comes with the skipped list filled.
func (m *Merger) Combine(ctx context.Context, inputs []Input, layout Layout) (*Combined, error) {
	result := &Combined{Skipped: make([]string, 0)}
	segments := make([][]byte, 0, len(inputs))

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		switch Classify(in.Name) {
		case entity.InputKindImage:
			page, err := imagePage(in.Name, in.Data, layout)
			if err != nil {
				m.logger.Warn("Skipping image", zap.String("file", in.Name), zap.Error(err))
				result.Skipped = append(result.Skipped, in.Name)
				continue
			}
			segments = append(segments, page)
			result.Pages++

		case entity.InputKindDocument:
			pages, err := countPages(in.Data)
			if err != nil {
				m.logger.Error("Failed to load pdf", zap.String("file", in.Name), zap.Error(err))
				return result, fmt.Errorf("%w: %s: %v", ErrDocumentLoad, in.Name, err)
			}
			if pages == 0 {
				result.Skipped = append(result.Skipped, in.Name)
				continue
			}
			segments = append(segments, in.Data)
			result.Pages += pages

		default:
			m.logger.Debug("Skipping unsupported file", zap.String("file", in.Name))
			result.Skipped = append(result.Skipped, in.Name)
		}
	}

	if len(segments) == 0 {
		return result, ErrNoPages
	}

	if len(segments) == 1 {
		result.PDF = segments[0]
		return result, nil
	}

	readers := make([]io.ReadSeeker, 0, len(segments))
	for _, seg := range segments {
		readers = append(readers, bytes.NewReader(seg))
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return result, fmt.Errorf("failed to merge %d segments: %w", len(segments), err)
	}
	result.PDF = out.Bytes()
	return result, nil
}

// countPages opens a PDF with MuPDF and returns its page count
func countPages(data []byte) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, err
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// PageCount returns the number of pages of a PDF
func PageCount(data []byte) (int, error) {
	n, err := countPages(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}
	return n, nil
}

func (m *Merger) observe(pages, skipped int, err error) {
	if m.metrics != nil {
		m.metrics.ObserveMerge(pages, skipped, err)
	}
}

// withRand pins the output name suffix
func (m *Merger) withRand(fn func(n int) int) *Merger {
	m.randN = fn
	return m
}

var _ port.PDFMerger = (*Merger)(nil)
