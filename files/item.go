// Package files models generated output as an in-memory tree of files
// and directories.
package files

import (
	"fmt"
	"path"
	"strings"
)

// Language tags file content for highlighting.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	JSON       Language = "json"
	Markdown   Language = "markdown"
	SQL        Language = "sql"
	YAML       Language = "yaml"
	Text       Language = "text"
)

var extensionLanguages = map[string]Language{
	".js":   JavaScript,
	".cjs":  JavaScript,
	".mjs":  JavaScript,
	".ts":   TypeScript,
	".json": JSON,
	".md":   Markdown,
	".sql":  SQL,
	".yaml": YAML,
	".yml":  YAML,
}

// Item is a node of the tree: a *File or a *Directory.
type Item interface {
	ItemName() string
	isItem()
}

type File struct {
	Name     string
	Content  string
	Language Language
}

type Directory struct {
	Name  string
	Files []Item
}

func (f *File) ItemName() string      { return f.Name }
func (d *Directory) ItemName() string { return d.Name }
func (*File) isItem()                 {}
func (*Directory) isItem()            {}

// NewFile returns a file whose language is inferred from its extension.
func NewFile(name, content string) *File {
	return &File{Name: name, Content: content, Language: languageOf(name)}
}

// NewDirectory returns a directory holding items. Sibling names must be
// unique; a duplicate is a programming error and panics.
func NewDirectory(name string, items ...Item) *Directory {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		n := it.ItemName()
		if seen[n] {
			panic(fmt.Sprintf("files: duplicate entry %q in directory %q", n, name))
		}
		seen[n] = true
	}
	return &Directory{Name: name, Files: items}
}

func ItemName(it Item) string { return it.ItemName() }

func IsFile(it Item) bool {
	_, ok := it.(*File)
	return ok
}

func IsDirectory(it Item) bool {
	_, ok := it.(*Directory)
	return ok
}

// FileLanguage returns the language of a file: the one it was created
// with, or the one implied by its extension. Directories have none.
func FileLanguage(it Item) Language {
	f, ok := it.(*File)
	if !ok {
		return ""
	}
	if f.Language != "" {
		return f.Language
	}
	return languageOf(f.Name)
}

func languageOf(name string) Language {
	if lang, ok := extensionLanguages[strings.ToLower(path.Ext(name))]; ok {
		return lang
	}
	return Text
}
