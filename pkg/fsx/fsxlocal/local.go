package fsxlocal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/fsx"
)

// LocalFileSystem keeps blobs under a root directory on disk
type LocalFileSystem struct {
	root string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func NewLocalFileSystem(root string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &LocalFileSystem{root: root}, nil
}

// resolve maps a blob path to a file below root, refusing traversal
func (l *LocalFileSystem) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "", fmt.Errorf("invalid path %q", p)
	}
	full := filepath.Join(l.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	return full, nil
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", p, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

func (l *LocalFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", p, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return fmt.Errorf("write %s: %w", p, err)
	}
	return f.Close()
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fsx.ErrNotExist
	}
	return data, err
}

func (l *LocalFileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fsx.ErrNotExist
	}
	return f, err
}

func (l *LocalFileSystem) Exists(ctx context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// DeleteFile is idempotent; deleting a missing file is not an error
func (l *LocalFileSystem) DeleteFile(ctx context.Context, p string) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", p, err)
	}
	return nil
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}
