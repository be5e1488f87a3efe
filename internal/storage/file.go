package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/dayone/internal/constants"
)

// FileBackend stores each key as a JSON file inside a directory
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (f *FileBackend) Init() error {
	if err := os.MkdirAll(f.dir, constants.DirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (f *FileBackend) Load() error {
	info, err := os.Stat(f.dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dayone init' first")
	}
	if err != nil {
		return fmt.Errorf("failed to access config directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}
	return nil
}

func (f *FileBackend) Close() error          { return nil }
func (f *FileBackend) GetConfigPath() string { return f.dir }

func (f *FileBackend) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key)
	return filepath.Join(f.dir, name+".json")
}

func (f *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set writes to a temporary file and renames it over the old value so a
// crash never leaves a half-written snapshot behind.
func (f *FileBackend) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".dayone-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, constants.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path(key))
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
