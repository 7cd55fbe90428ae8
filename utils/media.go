package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	// ErrNotImage is returned for uploads whose content is not an image.
	ErrNotImage = errors.New("upload a valid image")
	// ErrUploadTooLarge is returned when an upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)

// MediaStorage keeps uploaded post images on the local filesystem.
type MediaStorage struct {
	Root     string
	URL      string
	MaxBytes int64
}

// NewMediaStorage creates storage rooted at root and served under url.
func NewMediaStorage(root, url string, maxMB int) *MediaStorage {
	if maxMB <= 0 {
		maxMB = 10
	}
	return &MediaStorage{Root: root, URL: strings.TrimRight(url, "/"), MaxBytes: int64(maxMB) << 20}
}

// SaveImage stores an uploaded image under posts/ and returns its name relative to Root.
func (m *MediaStorage) SaveImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > m.MaxBytes {
		return "", ErrUploadTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := path.Join("posts", uuid.NewString()+mtype.Extension())
	dst := filepath.Join(m.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	written, err := io.Copy(out, &io.LimitedReader{R: src, N: m.MaxBytes + 1})
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write media file: %w", err)
	}
	if written > m.MaxBytes {
		_ = os.Remove(dst)
		return "", ErrUploadTooLarge
	}
	return name, nil
}

// URLFor returns the public URL of a stored file.
func (m *MediaStorage) URLFor(name string) string {
	if name == "" {
		return ""
	}
	return m.URL + "/" + name
}

// Remove deletes a stored file, ignoring files that are already gone.
func (m *MediaStorage) Remove(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(m.Root, filepath.FromSlash(name))); err != nil && !os.IsNotExist(err) {
		Sugar.Warnf("remove media file name=%s err=%v", name, err)
	}
}
