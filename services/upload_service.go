package services

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// UploadService is the local file relay: it lands uploaded avatars in Dir and
// hands back the public URL they will be served from.
type UploadService struct {
	Dir     string
	BaseURL string
}

func NewUploadService(dir, baseURL string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &UploadService{Dir: dir, BaseURL: baseURL}, nil
}

// Save streams the uploaded file to disk under a collision-resistant name and
// returns the URL it is reachable at.
func (u *UploadService) Save(originalName string, src io.Reader) (string, error) {
	name := generateFileName(originalName)

	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return u.BaseURL + "/uploads/" + name, nil
}

// generateFileName builds "<millisecond-timestamp>-<random-int><ext>",
// keeping only the original file's extension.
func generateFileName(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}
