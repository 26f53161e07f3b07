package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrTooLarge is returned by ReadFile when a file exceeds the caller's limit.
var ErrTooLarge = errors.New("file exceeds the maximum input size")

type FileSystem interface {
	ReadFile(filePath string, limit int64) ([]byte, error)
	WriteFile(filePath string, permission os.FileMode, contents []byte) error
	Exists(filePath string) (bool, error)
}

type LocalFileSystem struct{}

func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Read file contents. A limit greater than 0 rejects larger files with ErrTooLarge.
func (lfs *LocalFileSystem) ReadFile(filePath string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return os.ReadFile(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes: %w", filePath, stat.Size(), ErrTooLarge)
	}

	// The file may grow between Stat and Read.
	contents, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(contents)) > limit {
		return nil, fmt.Errorf("%s: %w", filePath, ErrTooLarge)
	}
	return contents, nil
}

// Writes to a file. Contents go to a temporary file in the same directory
// which is renamed over filePath, so readers never see a partial file.
func (lfs *LocalFileSystem) WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	dir := filepath.Dir(filePath)
	if err := MustCreateDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return fmt.Errorf("error in creating temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, permission); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, filePath)
}

// Checks if a file exists or not.
func (lfs *LocalFileSystem) Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
