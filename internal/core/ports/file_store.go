package ports

import (
	"context"
	"io"
)

// FileStore persists uploaded binaries (quotation PDFs, company logos).
// Save returns the stored path used for later Open/Remove calls.
type FileStore interface {
	Save(ctx context.Context, category, name string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
}
