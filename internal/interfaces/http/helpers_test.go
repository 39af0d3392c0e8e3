package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/container"
)

type testEnv struct {
	server    *Server
	container *container.Container
	publicDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := container.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "office.db")
	cfg.Storage.BaseDir = filepath.Join(dir, "public")
	cfg.Auth.BcryptCost = bcrypt.MinCost

	logger := zap.NewNop()
	c, err := container.NewContainer(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() { _ = c.Close() })

	serverCfg := DefaultServerConfig()
	serverCfg.Mode = gin.TestMode
	serverCfg.StaticDirs = map[string]string{
		"/pdf":        filepath.Join(cfg.Storage.BaseDir, cfg.Storage.UploadDir),
		"/merged_pdf": filepath.Join(cfg.Storage.BaseDir, cfg.Storage.MergedDir),
	}

	svc := c.Services()
	server := NewServer(serverCfg, Services{
		Forms:   svc.Forms,
		Queries: svc.Queries,
		Lookups: svc.Lookups,
		Admin:   svc.Admin,
		Auth:    svc.Auth,
	}, c, c.Metrics(), container.NewServiceLogger(logger))

	return &testEnv{server: server, container: c, publicDir: cfg.Storage.BaseDir}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.server.Router().ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) postForm(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

type part struct {
	name string
	data []byte
}

// multipartRequest builds a request with text fields and files under "files"
func multipartRequest(t *testing.T, method, path string, fields map[string]string, files []part) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pdfBytes(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Text(50, 50, "receipt page")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func formFields() map[string]string {
	return map[string]string{
		"fy_year":     `{"_id":"fy1","fy_name":"2023-2024"}`,
		"month":       `{"_id":"m4","month_name":"April","month_id":true}`,
		"head_cat":    `{"head_cat_id":1,"head_cat_name":"Travel"}`,
		"type":        `"cash"`,
		"sub_cat":     `{"sub_cat_id":3,"sub_cat_name":"Fuel"}`,
		"date":        "15-04-2023",
		"received_by": `[{"emp_id":"E1","emp_name":"Asha"}]`,
		"particulars": "Diesel for the van",
		"departments": `[{"dept_id":2,"dept_short_name":"OPS"}]`,
		"vehicles":    `[{"vehicle_id":12,"vehicle_name":"Van"}]`,
		"bills":       `[{"bill_no":"A1","amount":100},{"bill_no":"A2","amount":"50"}]`,
	}
}
