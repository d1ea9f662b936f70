package files

import "strings"

// FileTree is a tree together with its selection state: the active path
// and which folders are open. Helpers never modify their argument; they
// return an updated copy.
type FileTree struct {
	Root       Item
	ActivePath string
	Folders    map[string]bool
}

// NewFileTree selects defaultPath when it exists, otherwise the root, and
// opens every folder leading to the selection.
func NewFileTree(root Item, defaultPath string) FileTree {
	tree := FileTree{Root: root, ActivePath: root.ItemName(), Folders: map[string]bool{}}
	if _, ok := Lookup(root, defaultPath); ok {
		tree.ActivePath = defaultPath
	}
	tree.openAncestors(tree.ActivePath)
	if IsDirectory(root) {
		tree.Folders[root.ItemName()] = true
	}
	return tree
}

func (t FileTree) clone() FileTree {
	folders := make(map[string]bool, len(t.Folders))
	for k, v := range t.Folders {
		folders[k] = v
	}
	t.Folders = folders
	return t
}

func (t FileTree) openAncestors(p string) {
	parts := strings.Split(p, "/")
	for i := 1; i < len(parts); i++ {
		t.Folders[Join(parts[:i]...)] = true
	}
}

// Select makes p the active path. Selecting a folder also toggles it.
// Unknown paths leave the tree unchanged.
func (t FileTree) Select(p string) FileTree {
	it, ok := Lookup(t.Root, p)
	if !ok {
		return t
	}
	next := t.clone()
	next.ActivePath = p
	next.openAncestors(p)
	if IsDirectory(it) {
		next.Folders[p] = !t.Folders[p]
	}
	return next
}

// ToggleFolder opens a closed folder or closes an open one.
func (t FileTree) ToggleFolder(p string) FileTree {
	it, ok := Lookup(t.Root, p)
	if !ok || !IsDirectory(it) {
		return t
	}
	next := t.clone()
	next.Folders[p] = !t.Folders[p]
	return next
}

// IsOpen reports whether the folder at p is expanded.
func (t FileTree) IsOpen(p string) bool {
	return t.Folders[p]
}

// VisiblePaths lists, in display order, the paths not hidden inside a
// closed folder.
func (t FileTree) VisiblePaths() []string {
	var paths []string
	Walk(t.Root, func(p string, it Item) bool {
		for dir := parent(p); dir != ""; dir = parent(dir) {
			if !t.Folders[dir] {
				return true
			}
		}
		paths = append(paths, p)
		return true
	})
	return paths
}

// Move selects the visible entry delta positions away from the active
// one, clamped to the first and last entries.
func (t FileTree) Move(delta int) FileTree {
	visible := t.VisiblePaths()
	if len(visible) == 0 {
		return t
	}
	pos := 0
	for i, p := range visible {
		if p == t.ActivePath {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(visible) {
		pos = len(visible) - 1
	}
	next := t.clone()
	next.ActivePath = visible[pos]
	return next
}

// ActiveFilePath returns the active path when it addresses a file, and ""
// when nothing or a folder is selected.
func ActiveFilePath(t FileTree) string {
	if t.Root == nil || t.ActivePath == "" {
		return ""
	}
	it, ok := Lookup(t.Root, t.ActivePath)
	if !ok || !IsFile(it) {
		return ""
	}
	return t.ActivePath
}

func parent(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}
