package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by every adapter when a path has no content
var ErrNotExist = errors.New("fsx: file does not exist")

// FileReader is the read-only subset of FileSystem
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileSystem stores opaque blobs addressed by slash separated paths
type FileSystem interface {
	FileReader
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
	Join(elem ...string) string
}
