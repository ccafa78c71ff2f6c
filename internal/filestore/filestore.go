// Package filestore archives generated documents such as exported
// workbooks and labels.
package filestore

import (
	"context"
	"io"
)

// Common content types of archived files.
const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
)

// FileStore saves blobs under generated keys. Get and Delete return an error
// wrapping domain.ErrNotFound for unknown keys.
type FileStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (key string, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}
