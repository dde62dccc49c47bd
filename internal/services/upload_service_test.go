package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func multipartFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestUploadService_Save(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, "/uploads/")

	header := multipartFileHeader(t, "screenshot.png", "fake image bytes")

	url, err := svc.Save(42, header)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/42/"))
	require.True(t, strings.HasSuffix(url, "-screenshot.png"))

	// The file landed under the project's directory with the URL's name
	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(dir, "42", name))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(data))
}

func TestUploadService_Save_SanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, "/uploads")

	header := multipartFileHeader(t, "../../etc/pass wd.txt", "content")

	url, err := svc.Save(1, header)
	require.NoError(t, err)
	require.NotContains(t, url, "..")
	require.NotContains(t, url, " ")
	require.True(t, strings.HasSuffix(url, "-pass_wd.txt"))
}

func TestUploadService_Save_Empty(t *testing.T) {
	svc := NewUploadService(t.TempDir(), "/uploads")

	header := multipartFileHeader(t, "empty.txt", "")

	_, err := svc.Save(1, header)
	require.ErrorIs(t, err, ErrEmptyUpload)
}
