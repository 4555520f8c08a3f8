// Package storage defines the FileStore interface used for generated media:
// scenario images and rehearsal takes. Local disk is the default backend; any
// S3-compatible bucket can be used instead.
package storage

import (
	"context"
	"fmt"
	"io"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing, truncating an existing file.
	// The caller must close the returned WriteCloser to flush data.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)

	// Locate returns an opaque reference for path that a player or browser
	// can open (a filesystem path, an s3:// or https:// URL).
	Locate(path string) string
}

// Put writes data to path in one call.
func Put(ctx context.Context, fs FileStore, path string, data []byte) error {
	w, err := fs.Write(ctx, path)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", path, err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
