package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
)

// File stores each key as a file in a state directory, the local analogue of
// browser storage.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile creates a file backend rooted at dir. An empty dir means the
// storefront directory under the user's config dir.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.NewConfigError("storage", "cannot resolve config directory", err)
		}
		dir = filepath.Join(base, constants.StateDirName)
	}
	return &File{dir: dir}, nil
}

// Dir returns the state directory.
func (f *File) Dir() string {
	return f.dir
}

// Get implements Backend.
func (f *File) Get(ctx context.Context, key string) (string, error) {
	path, err := f.path(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", notFound(key)
	}
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	return string(data), nil
}

// Set implements Backend. The value is written to a temp file and renamed
// into place so readers never see a partial write.
func (f *File) Set(ctx context.Context, key, value string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", f.dir, err)
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.SecureFilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// Delete implements Backend. Deleting a missing key is not an error.
func (f *File) Delete(_ context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", path, err)
	}
	return nil
}

// Close implements Backend.
func (f *File) Close() error { return nil }

func (f *File) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", errors.NewValidationError("key", key, "must be a plain file name")
	}
	return filepath.Join(f.dir, key), nil
}
