package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/ui"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the schema",
	Long: `Validate your schema file before generating code.

This command checks:
- Schema, model, field and index names (non-empty, unique, valid identifiers)
- Data types (lengths, precision and scale, enum values, array elements)
- Associations (targets exist, aliases are unique, join tables do not collide)
- Indexes (fields exist, names are unique)
- Timestamp options (paranoid models need timestamps)

Examples:
  modelgen validate                       # Validate schema.yaml
  modelgen validate --schema blog.yml     # Validate another schema file
  modelgen validate --format json         # Output validation results as JSON
`,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustProject()
		result := p.validate()

		switch validateFormat {
		case "json":
			if err := ui.ReportJSON(os.Stdout, result); err != nil {
				fail("Writing report", err)
			}
		case "text":
			ui.ReportText(os.Stdout, result)
		default:
			fail("Schema validation failed", fmt.Errorf("unsupported format: %s", validateFormat))
		}
		if !result.Valid {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "Output format (text, json)")
}
