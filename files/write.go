package files

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Write materializes the tree under dir, so the root itself becomes
// dir/<root name>. Existing files are overwritten; nothing is removed.
func Write(fs afero.Fs, dir string, root Item) error {
	var err error
	Walk(root, func(p string, it Item) bool {
		target := filepath.Join(dir, filepath.FromSlash(p))
		switch v := it.(type) {
		case *Directory:
			if mkErr := fs.MkdirAll(target, 0o755); mkErr != nil {
				err = fmt.Errorf("failed to create directory %s: %w", target, mkErr)
				return false
			}
		case *File:
			if mkErr := fs.MkdirAll(filepath.Dir(target), 0o755); mkErr != nil {
				err = fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), mkErr)
				return false
			}
			if wErr := afero.WriteFile(fs, target, []byte(v.Content), 0o644); wErr != nil {
				err = fmt.Errorf("failed to write %s: %w", target, wErr)
				return false
			}
		}
		return true
	})
	return err
}
