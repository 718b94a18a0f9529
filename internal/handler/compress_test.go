package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"huffpress/internal/handler"
	"huffpress/internal/model"
	"huffpress/internal/repo"
	"huffpress/internal/router"
	"huffpress/internal/service"
	"huffpress/internal/storage"
	"huffpress/pkg/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blobs, err := storage.NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	t.Cleanup(func() { blobs.Close() })

	logg := logger.New()
	svc := service.NewCompressService(repo.NewJobRepoInMemory(), blobs, logg)

	r := gin.New()
	router.Register(r, router.Dependencies{
		CompressHandler: handler.NewCompressHandler(svc, logg),
		MaxUploadBytes:  1 << 20,
	})
	return r
}

func uploadRequest(t *testing.T, url, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCompressDecompressOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/v1/compress", "magic.txt", []byte("abracadabra")))
	if w.Code != http.StatusCreated {
		t.Fatalf("compress status %d: %s", w.Code, w.Body)
	}
	var job model.Job
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("job json: %v", err)
	}
	if job.OutputName != "magic.txt.huf.zip" {
		t.Fatalf("output name %q", job.OutputName)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/download/"+job.OutputName, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("download status %d", w.Code)
	}
	archive := w.Body.Bytes()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/v1/decompress", job.OutputName, archive))
	if w.Code != http.StatusOK {
		t.Fatalf("decompress status %d: %s", w.Code, w.Body)
	}
	var dejob model.Job
	if err := json.Unmarshal(w.Body.Bytes(), &dejob); err != nil {
		t.Fatalf("job json: %v", err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/download/"+dejob.OutputName, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("result download status %d", w.Code)
	}
	if w.Body.String() != "abracadabra" {
		t.Fatalf("round-trip over HTTP: %q", w.Body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("jobs status %d", w.Code)
	}
	var jobs []model.Job
	if err := json.Unmarshal(w.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("jobs json: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
}

func TestCompressRejectsMissingFile(t *testing.T) {
	r := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("note", "no file here")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/compress", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestCompressRejectsUnsupportedType(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/api/v1/compress", "tune.mp3", []byte("ID3")))
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status %d, want 415", w.Code)
	}
}

func TestDownloadMissing(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/download/nope.zip", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}
