package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/docs"
)

var (
	docsFormat string
	docsOutput string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate an ERD diagram from the schema",
	Long: `Generate an entity relationship diagram of the tables the schema
produces, join tables included.

Supported formats:
  - mermaid: Markdown document with a Mermaid erDiagram
  - plantuml: PlantUML ERD diagram
  - graphviz: Graphviz DOT format

Without --output the diagram is printed.

Examples:
  modelgen docs
  modelgen docs --format plantuml --output erd.puml
  modelgen docs --format graphviz --output erd.dot
`,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := docs.ParseFormat(docsFormat)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			fmt.Println("Supported formats: mermaid, plantuml, graphviz")
			os.Exit(1)
		}

		p := mustProject()
		pl, err := p.buildPlan()
		if err != nil {
			fail("Planning schema", err)
		}
		if len(pl.Tables) == 0 {
			fmt.Println("❌ No tables found in schema")
			os.Exit(1)
		}

		content, err := docs.Render(pl, format)
		if err != nil {
			fail("Rendering diagram", err)
		}
		if docsOutput == "" {
			fmt.Print(content)
			return
		}
		if err := afero.WriteFile(appFs, docsOutput, []byte(content), 0o644); err != nil {
			fail("Writing diagram", err)
		}
		fmt.Printf("✅ %s ERD saved to: %s\n", format, docsOutput)
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsFormat, "format", "f", string(docs.Mermaid), "Output format (mermaid, plantuml, graphviz)")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output file")
}
