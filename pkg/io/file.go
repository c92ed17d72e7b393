package io

import (
	"io"
	"os"
	"path/filepath"

	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
)

// write copies a finished document to w, reporting failures as IO_WRITE.
func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeIOWrite, err, "write document")
	}
	return nil
}

// WriteFile writes data to path via a temporary file in the same directory
// that is renamed over path once fully written and closed. The temporary
// file is closed and removed on every failure path, so path either holds
// the complete document or is left untouched.
func WriteFile(path string, data []byte) (err error) {
	if err := cerrors.ValidateOutputPath(path); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeIOWrite, err, "create %s", path)
	}
	tmp := f.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = os.Remove(tmp)
	}()

	if _, err = f.Write(data); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeIOWrite, err, "write %s", path)
	}
	if err = f.Chmod(0644); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeIOWrite, err, "chmod %s", path)
	}
	closed = true
	if err = f.Close(); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeIOWrite, err, "close %s", path)
	}
	if err = os.Rename(tmp, path); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeIOWrite, err, "rename %s", path)
	}
	return nil
}
