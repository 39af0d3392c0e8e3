package pdfmerge

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	xdraw "golang.org/x/image/draw"
)

// decodeImage decodes with the codec matching the extension
func decodeImage(name string, data []byte) (image.Image, string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		img, err := png.Decode(bytes.NewReader(data))
		return img, "PNG", err
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		return img, "JPG", err
	default:
		return nil, "", fmt.Errorf("unsupported image extension: %s", name)
	}
}

// resample scales img to w×h pixels
func resample(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// encodeImage re-encodes so fpdf always receives 8-bit baseline data
func encodeImage(img image.Image, imageType string) ([]byte, error) {
	var buf bytes.Buffer
	switch imageType {
	case "JPG":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
			return nil, err
		}
	default:
		nrgba, ok := img.(*image.NRGBA)
		if !ok {
			b := img.Bounds()
			nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
			draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		}
		if err := png.Encode(&buf, nrgba); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// imagePage renders one image as a one-page PDF
func imagePage(name string, data []byte, layout Layout) ([]byte, error) {
	img, imageType, err := decodeImage(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("image %s has no pixels", name)
	}

	var pageW, pageH, x, y float64
	drawW, drawH := b.Dx(), b.Dy()

	switch layout {
	case LayoutNative:
		pageW, pageH = float64(drawW), float64(drawH)
	default:
		drawW, drawH = FitInside(b.Dx(), b.Dy(), A4Width, A4Height)
		img = resample(img, drawW, drawH)
		pageW, pageH = A4Width, A4Height
		x, y = Center(drawW, drawH, pageW, pageH)
	}

	encoded, err := encodeImage(img, imageType)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image %s: %w", name, err)
	}

	size := fpdf.SizeType{Wd: pageW, Ht: pageH}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", size)

	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("img", opts, bytes.NewReader(encoded))
	pdf.ImageOptions("img", x, y, float64(drawW), float64(drawH), false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to render image page %s: %w", name, err)
	}
	return out.Bytes(), nil
}

// blankPage renders one empty A4 page; fpdf cannot emit a document without pages
func blankPage() ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: A4Width, Ht: A4Height},
	})
	pdf.AddPage()

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to render blank page: %w", err)
	}
	return out.Bytes(), nil
}
