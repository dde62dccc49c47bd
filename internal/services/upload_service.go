package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrEmptyUpload = errors.New("empty upload")

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadService stores task attachments on local disk and hands back
// publicly resolvable URLs under the configured base path.
type UploadService struct {
	dir     string
	baseURL string
}

// NewUploadService creates a new UploadService.
func NewUploadService(dir, baseURL string) *UploadService {
	return &UploadService{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save writes one uploaded file under the project's directory and returns
// its URL. Filenames get a random prefix so uploads never collide.
func (s *UploadService) Save(projectID uint64, header *multipart.FileHeader) (string, error) {
	if header == nil || header.Size == 0 {
		return "", ErrEmptyUpload
	}
	if header.Size > maxUploadBytes {
		return "", fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	prefix := make([]byte, 8)
	if _, err := rand.Read(prefix); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}

	name := fmt.Sprintf("%s-%s", hex.EncodeToString(prefix), sanitizeFilename(header.Filename))
	projectDir := filepath.Join(s.dir, fmt.Sprintf("%d", projectID))
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(projectDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/%d/%s", s.baseURL, projectID, name), nil
}

// sanitizeFilename strips path components and characters that do not belong
// in a URL segment.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
