package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/filestore"
)

var errPathTraversal = errors.New("path traversal attempt")

// Store keeps files in a single directory on local disk.
type Store struct {
	basePath string
}

func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes r to a new file named <prefix>_<uuid><ext> and returns that
// name as the key.
func (s *Store) Save(ctx context.Context, prefix, mimeType string, r io.Reader) (string, error) {
	key := fmt.Sprintf("%s_%s%s", sanitizePrefix(prefix), uuid.NewString(), mimeTypeToExt(mimeType))
	filePath := filepath.Join(s.basePath, key)

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		return "", multierr.Combine(fmt.Errorf("failed to write file: %w", err), f.Close(), os.Remove(filePath))
	}
	if err := f.Close(); err != nil {
		return "", multierr.Append(fmt.Errorf("failed to close file: %w", err), os.Remove(filePath))
	}
	return key, nil
}

func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("file %q: %w", key, domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, extToMimeType(filePath), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %q: %w", key, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *Store) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, errPathTraversal)
	}
	return absPath, nil
}

// sanitizePrefix keeps ASCII letters, digits, '-' and '_'.
func sanitizePrefix(prefix string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, prefix)
	if clean == "" {
		return "file"
	}
	return clean
}

func mimeTypeToExt(mimeType string) string {
	switch mimeType {
	case filestore.MimeXLSX:
		return ".xlsx"
	case filestore.MimePDF:
		return ".pdf"
	case filestore.MimePNG:
		return ".png"
	default:
		return ".bin"
	}
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		return filestore.MimeXLSX
	case ".pdf":
		return filestore.MimePDF
	case ".png":
		return filestore.MimePNG
	default:
		return "application/octet-stream"
	}
}
