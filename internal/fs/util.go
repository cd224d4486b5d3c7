package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/akeil/resample/internal/logging"
)

// rename is replaced in tests to simulate moves across file systems.
var rename = os.Rename

// TempName returns a hidden, unique file name in the same directory as
// path, suitable as a staging file for an atomic write.
func TempName(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.New().String()+".tmp")
}

// Move moves a file from src to dst.
// It tries to rename first and falls back on "copy and delete".
//
// If src cannot be deleted after a successful copy,
// NO error is returned and src remains as it was.
func Move(src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		return nil
	}

	logging.Debug("Rename %v -> %v failed (%v), copy instead", src, dst, err)
	err = copyFile(src, dst)
	if err != nil {
		return err
	}

	if rmErr := os.Remove(src); rmErr != nil {
		logging.Warning("Failed to remove %v after copy: %v", src, rmErr)
	}
	return nil
}

// copyFile copies the contents and permissions of src to dst.
// A partially written dst is removed on failure.
func copyFile(src, dst string) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()

	info, err := r.Stat()
	if err != nil {
		return err
	}

	w, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	closeErr := w.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
	}
	return err
}
