package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"studybuddy_server/services"

	"github.com/gorilla/mux"
)

func newUploadRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := services.NewUploadService(dir, "")
	if err != nil {
		t.Fatalf("failed to build upload service: %v", err)
	}

	r := mux.NewRouter()
	RegisterUploadRoutes(r, svc)
	return r, dir
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write file part: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUpload_RoundTripsFileBytes(t *testing.T) {
	router, _ := newUploadRouter(t)

	content := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	body, contentType := multipartBody(t, "avatar", "me.png", content)

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !strings.HasPrefix(resp.ImageURL, "/uploads/") {
		t.Fatalf("unexpected imageUrl %q", resp.ImageURL)
	}

	// The served file must be byte-identical to the upload.
	getReq := httptest.NewRequest(http.MethodGet, resp.ImageURL, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 serving %s, got %d", resp.ImageURL, getRec.Code)
	}
	served, _ := io.ReadAll(getRec.Body)
	if !bytes.Equal(served, content) {
		t.Errorf("served bytes differ from the uploaded file")
	}
}

func TestUpload_MissingFileFieldIs400(t *testing.T) {
	router, dir := newUploadRouter(t)

	// Multipart body with the wrong field name.
	body, contentType := multipartBody(t, "not-avatar", "me.png", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("expected an {error} body, got %s", rec.Body.String())
	}

	// Nothing may have been written.
	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read upload dir: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty upload dir, found %d files", len(files))
	}
}

func TestUpload_NonMultipartIs400(t *testing.T) {
	router, _ := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
