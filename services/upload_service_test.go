package services

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var uploadNamePattern = regexp.MustCompile(`^\d+-\d+\.png$`)

func TestUploadService_SaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewUploadService(dir, "http://localhost:8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := []byte("fake png bytes")
	url, err := svc.Save("avatar.png", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Fatalf("unexpected url %q", url)
	}

	name := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	if !uploadNamePattern.MatchString(name) {
		t.Errorf("generated name %q does not match <ms-timestamp>-<random-int><ext>", name)
	}

	saved, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if !bytes.Equal(saved, content) {
		t.Errorf("saved bytes differ from the upload")
	}
}

func TestUploadService_KeepsOnlyExtension(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewUploadService(dir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := svc.Save("../../etc/passwd my photo.jpeg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if strings.Contains(url, "passwd") || strings.Contains(url, " ") {
		t.Errorf("original name leaked into url %q", url)
	}
	if !strings.HasSuffix(url, ".jpeg") {
		t.Errorf("expected .jpeg extension preserved, got %q", url)
	}
}

func TestUploadService_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewUploadService(dir, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir was not created: %v", err)
	}
}
