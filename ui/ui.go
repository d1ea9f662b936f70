// Package ui renders CLI output: status lines, file trees, tables,
// highlighted code and Markdown.
package ui

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/ridoystarlord/modelgen/files"
)

var (
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SecondaryColor = lipgloss.Color("#6C757D")

	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	warning = color.New(color.FgYellow, color.Bold)
	info    = color.New(color.FgCyan)
)

// Title renders a heading with an optional dimmed subtitle.
func Title(title, subtitle string) string {
	if subtitle == "" {
		return TitleStyle.Render(title)
	}
	return lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(title), SecondaryStyle.Render(subtitle))
}

func Success(w io.Writer, format string, args ...any) {
	success.Fprintln(w, "✅ "+fmt.Sprintf(format, args...))
}

func Failure(w io.Writer, format string, args ...any) {
	failure.Fprintln(w, "❌ "+fmt.Sprintf(format, args...))
}

func Warning(w io.Writer, format string, args ...any) {
	warning.Fprintln(w, "⚠️  "+fmt.Sprintf(format, args...))
}

func Info(w io.Writer, format string, args ...any) {
	info.Fprintln(w, "ℹ️  "+fmt.Sprintf(format, args...))
}

// Tree renders root as an indented tree. Directories come before files,
// both in the order the framework produced them.
func Tree(root files.Item) (string, error) {
	top := pterm.TreeNode{Children: []pterm.TreeNode{treeNode(root)}}
	return pterm.DefaultTree.WithRoot(top).Srender()
}

func treeNode(it files.Item) pterm.TreeNode {
	dir, ok := it.(*files.Directory)
	if !ok {
		return pterm.TreeNode{Text: it.ItemName()}
	}
	node := pterm.TreeNode{Text: TitleStyle.Render(dir.Name + "/")}
	children := append([]files.Item(nil), dir.Files...)
	sort.SliceStable(children, func(i, j int) bool {
		return files.IsDirectory(children[i]) && !files.IsDirectory(children[j])
	})
	for _, c := range children {
		node.Children = append(node.Children, treeNode(c))
	}
	return node
}

// Table renders rows under a header line.
func Table(headers []string, rows [][]string) (string, error) {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// Markdown renders md for the terminal.
func Markdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// Highlight colors source with the lexer for lang.
func Highlight(source string, lang files.Language) (string, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, source, lexerName(lang), "terminal256", "monokai"); err != nil {
		return "", fmt.Errorf("highlighting %s: %w", lang, err)
	}
	return buf.String(), nil
}

func lexerName(lang files.Language) string {
	switch lang {
	case files.Text, "":
		return "plaintext"
	default:
		return string(lang)
	}
}

// ShowFile renders a generated file: Markdown through glamour, everything
// else highlighted, under a header naming p.
func ShowFile(w io.Writer, p string, f *files.File) error {
	var body string
	var err error
	switch lang := files.FileLanguage(f); lang {
	case files.Markdown:
		body, err = Markdown(f.Content)
	default:
		body, err = Highlight(f.Content, lang)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, Title(path.Base(p), p))
	fmt.Fprintln(w)
	fmt.Fprint(w, body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(w)
	}
	return nil
}
