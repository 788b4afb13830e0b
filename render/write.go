package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flanksource/catalogpdf/shutdown"
)

// WriteFileAtomic writes data next to path and renames it into place, so
// readers only ever see the previous file or the complete new one. The temp
// file is removed if the process is interrupted before the rename.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	remove := shutdown.AddHook("remove "+tmpName, func() {
		_ = os.Remove(tmpName)
	})
	defer remove()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
