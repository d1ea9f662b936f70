package files

import "strings"

// Join builds a tree path from entry names.
func Join(names ...string) string {
	return strings.Join(names, "/")
}

// Lookup returns the item addressed by p. Paths start with the root's own
// name, so a tree rooted at "blog" addresses its readme as "blog/README.md".
func Lookup(root Item, p string) (Item, bool) {
	parts := strings.Split(p, "/")
	if len(parts) == 0 || parts[0] != root.ItemName() {
		return nil, false
	}
	current := root
	for _, name := range parts[1:] {
		dir, ok := current.(*Directory)
		if !ok {
			return nil, false
		}
		next, found := child(dir, name)
		if !found {
			return nil, false
		}
		current = next
	}
	return current, true
}

func child(dir *Directory, name string) (Item, bool) {
	for _, it := range dir.Files {
		if it.ItemName() == name {
			return it, true
		}
	}
	return nil, false
}

// WalkFunc is called for every item with its path. Returning false stops
// the walk.
type WalkFunc func(p string, it Item) bool

// Walk visits the tree depth first, each directory before its children,
// children in order.
func Walk(root Item, fn WalkFunc) {
	walk(root.ItemName(), root, fn)
}

func walk(p string, it Item, fn WalkFunc) bool {
	if !fn(p, it) {
		return false
	}
	dir, ok := it.(*Directory)
	if !ok {
		return true
	}
	for _, c := range dir.Files {
		if !walk(p+"/"+c.ItemName(), c, fn) {
			return false
		}
	}
	return true
}

// Paths lists the path of every file in walk order.
func Paths(root Item) []string {
	var paths []string
	Walk(root, func(p string, it Item) bool {
		if IsFile(it) {
			paths = append(paths, p)
		}
		return true
	})
	return paths
}

// FirstFile returns the path of the first file in walk order that
// satisfies match.
func FirstFile(root Item, match func(p string, f *File) bool) (string, bool) {
	var found string
	Walk(root, func(p string, it Item) bool {
		if f, ok := it.(*File); ok && match(p, f) {
			found = p
			return false
		}
		return true
	})
	return found, found != ""
}
