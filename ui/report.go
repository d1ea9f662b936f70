package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ridoystarlord/modelgen/validator"
)

// ReportJSON writes result as indented JSON.
func ReportJSON(w io.Writer, result *validator.ValidationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// ReportText writes result grouped by severity, followed by a summary.
func ReportText(w io.Writer, result *validator.ValidationResult) {
	if result.Valid {
		success.Fprintln(w, "✅ Schema validation passed!")
	} else {
		failure.Fprintln(w, "❌ Schema validation failed!")
	}

	section(w, "🔴 Errors", color.New(color.FgRed), result.Errors)
	section(w, "🟡 Warnings", color.New(color.FgYellow), result.Warnings)
	section(w, "🔵 Info", color.New(color.FgCyan), result.Info)

	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
	fmt.Fprintf(w, "  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Fprintf(w, "\n🎉 Your schema is valid and ready for generation!\n")
	} else {
		fmt.Fprintf(w, "\n💡 Fix the errors above before generating.\n")
	}
}

func section(w io.Writer, title string, c *color.Color, items []validator.ValidationError) {
	if len(items) == 0 {
		return
	}
	c.Fprintf(w, "\n%s (%d):\n", title, len(items))
	for i, e := range items {
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, location(e), e.Message)
	}
}

func location(e validator.ValidationError) string {
	loc := "[schema]"
	if e.Table != "" {
		loc = "[" + e.Table + "]"
	}
	if e.Column != "" {
		loc += "." + e.Column
	}
	if e.Index != "" {
		loc += " (index: " + e.Index + ")"
	}
	return loc
}
