// Package codegen has small helpers for assembling generated source text.
package codegen

import (
	"strings"
)

type linesConfig struct {
	depth     int
	separator string
}

// LinesOption configures Lines.
type LinesOption func(*linesConfig)

// Depth indents every produced line by n spaces.
func Depth(n int) LinesOption { return func(c *linesConfig) { c.depth = n } }

// Separator is appended to every item but the last, e.g. "," for object
// literals.
func Separator(sep string) LinesOption { return func(c *linesConfig) { c.separator = sep } }

// Lines joins items with newlines. Items may span several lines.
func Lines(items []string, opts ...LinesOption) string {
	cfg := linesConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(item)
		if cfg.separator != "" && i < len(items)-1 {
			b.WriteString(cfg.separator)
		}
	}
	return Indent(cfg.depth, b.String())
}

// Indent prefixes every non-blank line of s with depth spaces.
func Indent(depth int, s string) string {
	if depth <= 0 {
		return s
	}
	pad := strings.Repeat(" ", depth)
	ls := strings.Split(s, "\n")
	for i, l := range ls {
		if strings.TrimSpace(l) != "" {
			ls[i] = pad + l
		}
	}
	return strings.Join(ls, "\n")
}

// Blank is an empty line.
func Blank() string { return "" }

// Quote renders s as a single quoted JavaScript string literal.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// Filter drops empty items, for optional lines built inline.
func Filter(items ...string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}
