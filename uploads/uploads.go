// Package uploads stores multipart file fields on disk and maps them to
// public URLs under /uploads.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxFileSize caps uploaded files at 10MB.
const MaxFileSize = 10 << 20

var (
	ErrUnexpectedField = errors.New("unexpected upload field")
	ErrLogoNotImage    = errors.New("logo must be an image file")
	ErrDocumentNotPDF  = errors.New("documents must be PDF files")
	ErrFileTooLarge    = errors.New("file exceeds the 10MB size limit")
)

// Manager writes uploaded files under Root, one subdirectory per field kind.
type Manager struct {
	Root        string
	MaxFileSize int64
}

func NewManager(root string) *Manager {
	return &Manager{Root: root, MaxFileSize: MaxFileSize}
}

func subdirFor(field string) string {
	switch field {
	case "logo":
		return "logos"
	case "rhpPdf", "drhpPdf":
		return "documents"
	default:
		return "misc"
	}
}

// validate rejects unknown fields, wrong content types and oversized files
// before anything touches the disk.
func (m *Manager) validate(field string, file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	switch field {
	case "logo":
		if !strings.HasPrefix(contentType, "image/") {
			return ErrLogoNotImage
		}
	case "rhpPdf", "drhpPdf":
		if contentType != "application/pdf" {
			return ErrDocumentNotPDF
		}
	default:
		return ErrUnexpectedField
	}
	if file.Size > m.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// Save persists one uploaded file under the subdirectory chosen by its field
// name and returns the stored path. The filename combines the field name, a
// timestamp and a random suffix so collisions need no lookup.
func (m *Manager) Save(field string, file *multipart.FileHeader) (string, error) {
	if err := m.validate(field, file); err != nil {
		return "", err
	}

	dir := filepath.Join(m.Root, subdirFor(field))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	name := fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), suffix,
		strings.ToLower(filepath.Ext(file.Filename)))
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"field": field,
		"file":  name,
		"size":  file.Size,
	}).Debug("Upload stored")

	return dst, nil
}

// PublicURL converts a stored path to the URL it is served under.
func (m *Manager) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(m.Root, path)
	if err != nil {
		return ""
	}
	return "/uploads/" + filepath.ToSlash(rel)
}

// Remove deletes a stored file, silently doing nothing when the path does not
// exist. Callers use it to clean up uploads after a failed validation.
func (m *Manager) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithField("path", path).WithError(err).Warn("Failed to remove uploaded file")
	}
}
