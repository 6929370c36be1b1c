// Package storage 提供文件存储的抽象及其本地目录与 MinIO 实现。
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var (
	// ErrNotExist 表示文件在存储中不存在。
	ErrNotExist = errors.New("storage: file does not exist")
	// ErrExist 表示同名文件已经存在，存储不会覆盖它。
	ErrExist = errors.New("storage: file already exists")
	// ErrInvalidName rejects names that are empty or could escape the store root.
	ErrInvalidName = errors.New("storage: invalid file name")
)

// FileInfo describes a stored file.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileStore is durable byte storage addressed by a flat stored name.
type FileStore interface {
	// Save writes r under name and returns the number of bytes written.
	// It never overwrites an existing file.
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	// Open returns the content of name. The caller closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, *FileInfo, error)
	Exists(ctx context.Context, name string) (bool, error)
	// Delete removes name. Deleting a missing file is not an error.
	Delete(ctx context.Context, name string) error
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
