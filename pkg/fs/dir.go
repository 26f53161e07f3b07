package fs

import (
	"errors"
	"os"
)

// MustCreateDir creates dirName and its parents. An existing directory is
// not an error; an existing non-directory is.
func MustCreateDir(dirName string) error {
	stat, err := os.Stat(dirName)
	if err == nil {
		if !stat.IsDir() {
			return errors.New("path exists but is not a directory")
		}
		return nil
	}

	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirName, 0o755)
}
