// Package pdfmerge combines uploaded images and PDF documents into one PDF.
package pdfmerge

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// A4 page size in points
const (
	A4Width  = 595.0
	A4Height = 842.0
)

// Layout decides how an image becomes a page
type Layout int

const (
	// LayoutFitA4 scales the image to fit an A4 page and centers it
	LayoutFitA4 Layout = iota
	// LayoutNative places the image at its pixel size on a page of the same size
	LayoutNative
)

func (l Layout) String() string {
	if l == LayoutNative {
		return "native"
	}
	return "fit_a4"
}

// FitInside scales w×h to the largest size inside maxW×maxH that keeps the aspect ratio.
// Small images are enlarged.
func FitInside(w, h int, maxW, maxH float64) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Min(maxW/float64(w), maxH/float64(h))
	fw := int(math.Round(float64(w) * scale))
	fh := int(math.Round(float64(h) * scale))
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

// Center returns the top-left offset that centers w×h on a pageW×pageH page
func Center(w, h int, pageW, pageH float64) (float64, float64) {
	return (pageW - float64(w)) / 2, (pageH - float64(h)) / 2
}

// Classify returns the input kind for a file name, from its extension
func Classify(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return entity.InputKindImage
	case ".pdf":
		return entity.InputKindDocument
	default:
		return entity.InputKindSkipped
	}
}
