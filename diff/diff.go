// Package diff compares a generated tree with what is already on disk.
package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/ridoystarlord/modelgen/files"
)

type OperationType string

const (
	CreateFile OperationType = "CREATE_FILE"
	UpdateFile OperationType = "UPDATE_FILE"
	Unchanged  OperationType = "UNCHANGED"
	// StaleFile is a file on disk the tree no longer produces. It is
	// reported, never removed.
	StaleFile OperationType = "STALE_FILE"
)

// Operation is what writing the tree would do to one path. Paths are
// slash separated and start with the root name, like files.Paths.
type Operation struct {
	Type OperationType
	Path string
}

// skipDirs are never scanned for stale files.
var skipDirs = map[string]bool{"node_modules": true, ".git": true}

// DiffTree compares root with the files under dir/<root name>. Operations
// for generated files come in tree order, stale files after them sorted.
func DiffTree(fs afero.Fs, dir string, root files.Item) ([]Operation, error) {
	var ops []Operation
	generated := map[string]bool{}
	var err error

	files.Walk(root, func(p string, it files.Item) bool {
		f, ok := it.(*files.File)
		if !ok {
			return true
		}
		generated[p] = true
		existing, readErr := afero.ReadFile(fs, filepath.Join(dir, filepath.FromSlash(p)))
		switch {
		case os.IsNotExist(readErr):
			ops = append(ops, Operation{Type: CreateFile, Path: p})
		case readErr != nil:
			err = fmt.Errorf("reading %s: %w", p, readErr)
			return false
		case string(existing) != f.Content:
			ops = append(ops, Operation{Type: UpdateFile, Path: p})
		default:
			ops = append(ops, Operation{Type: Unchanged, Path: p})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	stale, err := staleFiles(fs, dir, root.ItemName(), generated)
	if err != nil {
		return nil, err
	}
	for _, p := range stale {
		ops = append(ops, Operation{Type: StaleFile, Path: p})
	}
	return ops, nil
}

func staleFiles(fs afero.Fs, dir, rootName string, generated map[string]bool) ([]string, error) {
	base := filepath.Join(dir, rootName)
	if ok, err := afero.DirExists(fs, base); err != nil || !ok {
		return nil, err
	}

	var stale []string
	err := afero.Walk(fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if p := filepath.ToSlash(rel); !generated[p] {
			stale = append(stale, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", base, err)
	}
	sort.Strings(stale)
	return stale, nil
}

// Pending returns the operations that writing the tree would perform.
func Pending(ops []Operation) []Operation {
	var out []Operation
	for _, op := range ops {
		if op.Type == CreateFile || op.Type == UpdateFile {
			out = append(out, op)
		}
	}
	return out
}

// Count tallies operations by type.
func Count(ops []Operation) map[OperationType]int {
	counts := map[OperationType]int{}
	for _, op := range ops {
		counts[op.Type]++
	}
	return counts
}
