package orchestrator

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to path through a temporary file in the same
// directory followed by a rename, so readers never observe a partial
// artifact. The temporary file is removed on every failure.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &OutputError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		return &OutputError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &OutputError{Op: "sync", Path: path, Err: err}
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return &OutputError{Op: "close", Path: path, Err: err}
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return &OutputError{Op: "chmod", Path: path, Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &OutputError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
