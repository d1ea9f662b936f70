// Package docs renders entity relationship diagrams of a plan.
package docs

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
)

// Format is an ERD output format.
type Format string

const (
	Mermaid  Format = "mermaid"
	PlantUML Format = "plantuml"
	Graphviz Format = "graphviz"
)

// Formats lists the supported formats.
var Formats = []Format{Mermaid, PlantUML, Graphviz}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// Extension is the conventional file extension of the format.
func (f Format) Extension() string {
	switch f {
	case PlantUML:
		return ".puml"
	case Graphviz:
		return ".dot"
	}
	return ".md"
}

// Render renders p in the given format.
func Render(p plan.Plan, f Format) (string, error) {
	switch f {
	case Mermaid:
		return MermaidDocument(p), nil
	case PlantUML:
		return PlantUMLDiagram(p), nil
	case Graphviz:
		return GraphvizDiagram(p), nil
	}
	return "", fmt.Errorf("unsupported format: %s", f)
}

// displayType is the column type as a single diagram token.
func displayType(dt schema.DataType) string {
	switch dt.Type {
	case schema.TypeDateTime:
		return "TIMESTAMP"
	case schema.TypeArray:
		if dt.ArrayType != nil {
			return displayType(*dt.ArrayType) + "_ARRAY"
		}
	}
	return string(dt.Type)
}

type edge struct {
	from, to, label string
}

// edges lists one relationship per foreign key column, referenced table first.
func edges(p plan.Plan) []edge {
	var es []edge
	for _, t := range p.Tables {
		for _, c := range t.Columns {
			if c.References != nil {
				es = append(es, edge{from: c.References.Table, to: t.Name, label: c.Name})
			}
		}
	}
	return es
}

// MermaidDiagram renders the erDiagram block without a Markdown fence.
func MermaidDiagram(p plan.Plan) string {
	var content strings.Builder
	content.WriteString("erDiagram\n")

	for _, t := range p.Tables {
		content.WriteString(fmt.Sprintf("    %s {\n", t.Name))
		for _, col := range t.Columns {
			line := fmt.Sprintf("        %s %s", displayType(col.Type), col.Name)

			var keys []string
			if col.PrimaryKey {
				keys = append(keys, "PK")
			}
			if col.References != nil {
				keys = append(keys, "FK")
			}
			if col.Unique && !col.PrimaryKey {
				keys = append(keys, "UK")
			}
			if len(keys) > 0 {
				line += " " + strings.Join(keys, ", ")
			}
			if col.Comment != "" {
				line += fmt.Sprintf(" %q", col.Comment)
			}
			content.WriteString(line + "\n")
		}
		content.WriteString("    }\n")
	}

	for _, e := range edges(p) {
		content.WriteString(fmt.Sprintf("    %s ||--o{ %s : %s\n", e.from, e.to, e.label))
	}
	return content.String()
}

// MermaidDocument wraps the Mermaid diagram in a Markdown document.
func MermaidDocument(p plan.Plan) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("# %s ERD\n\n", p.SchemaName))
	content.WriteString("```mermaid\n")
	content.WriteString(MermaidDiagram(p))
	content.WriteString("```\n")
	return content.String()
}

func PlantUMLDiagram(p plan.Plan) string {
	var content strings.Builder
	content.WriteString("@startuml\n")
	content.WriteString("!theme plain\n")
	content.WriteString("skinparam linetype ortho\n\n")

	for _, t := range p.Tables {
		content.WriteString(fmt.Sprintf("entity \"%s\" {\n", t.Name))
		for _, col := range t.Columns {
			line := fmt.Sprintf("  %s : %s", col.Name, displayType(col.Type))
			if col.PrimaryKey {
				line += " <<PK>>"
			}
			if col.References != nil {
				line += " <<FK>>"
			}
			if col.Unique {
				line += " <<UQ>>"
			}
			if !col.AllowNull && !col.PrimaryKey {
				line += " <<NN>>"
			}
			content.WriteString(line + "\n")
		}
		content.WriteString("}\n\n")
	}

	for _, e := range edges(p) {
		content.WriteString(fmt.Sprintf("\"%s\" ||--o{ \"%s\" : \"%s\"\n", e.from, e.to, e.label))
	}
	content.WriteString("@enduml\n")
	return content.String()
}

func GraphvizDiagram(p plan.Plan) string {
	var content strings.Builder
	content.WriteString("digraph ERD {\n")
	content.WriteString("  rankdir=LR;\n")
	content.WriteString("  node [shape=record];\n\n")

	for _, t := range p.Tables {
		var columns []string
		for _, col := range t.Columns {
			line := fmt.Sprintf("%s: %s", col.Name, displayType(col.Type))
			if col.PrimaryKey {
				line += " (PK)"
			}
			if col.References != nil {
				line += " (FK)"
			}
			if col.Unique {
				line += " (UQ)"
			}
			columns = append(columns, line)
		}
		content.WriteString(fmt.Sprintf("  %q [label=\"%s|%s\\l\"];\n", t.Name, t.Name, strings.Join(columns, "\\l")))
	}

	for _, e := range edges(p) {
		content.WriteString(fmt.Sprintf("  %q -> %q [label=\"%s\"];\n", e.from, e.to, e.label))
	}
	content.WriteString("}\n")
	return content.String()
}
