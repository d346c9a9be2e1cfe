package repositories

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("file not found")

// FileStore is the holding area for uploaded documents.
type FileStore interface {
	// Save writes r under name and returns the number of bytes stored.
	Save(ctx context.Context, name string, r io.Reader, contentType string) (int64, error)
	// Open returns ErrFileNotFound when nothing is stored under name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes name. A file that is already gone counts as deleted.
	Delete(ctx context.Context, name string) error
}
