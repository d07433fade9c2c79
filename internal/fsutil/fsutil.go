// Package fsutil holds the atomic file-write primitive used for snapshot
// persistence.
package fsutil

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path by way of a temp file in the same
// directory followed by a rename. A concurrent reader of path sees either
// the previous complete file or the new complete file, never a partial
// write. The temp file is removed on any failure.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, perm)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
