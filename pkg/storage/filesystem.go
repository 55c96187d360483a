package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage persists uploaded files on disk under a base directory and
// maps stored files to public URLs served by the HTTP layer.
type LocalStorage struct {
	baseDir   string
	publicURL string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, publicURL string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicURL == "" {
		publicURL = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Save writes the given bytes to a uniquely named file keeping the original
// extension and returns the public URL.
func (s *LocalStorage) Save(data []byte, suggestedName string) (string, error) {
	filename := s.uniqueName(suggestedName)
	if err := os.WriteFile(filepath.Join(s.baseDir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.publicURL + "/" + filename, nil
}

// SaveStream copies from reader into a uniquely named file and returns the
// public URL. The partially written file is removed on copy failure.
func (s *LocalStorage) SaveStream(r io.Reader, suggestedName string) (string, error) {
	filename := s.uniqueName(suggestedName)
	target := filepath.Join(s.baseDir, filename)
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return s.publicURL + "/" + filename, nil
}

// Delete removes the file referenced by a previously returned URL.
func (s *LocalStorage) Delete(url string) error {
	name := path.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Dir exposes the base directory so the router can serve it statically.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) uniqueName(suggestedName string) string {
	ext := filepath.Ext(suggestedName)
	return uuid.NewString() + ext
}
