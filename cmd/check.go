package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/diff"
)

var checkOut string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the generated project is up to date",
	Long: `Check that the project on disk matches what the schema generates.

This command will:
- Validate the schema
- Generate the project in memory
- Compare every generated file with the one on disk
- Report missing, outdated and stale files

It exits with status 1 when a file is missing or outdated, which makes it
suitable for CI.

Examples:
  modelgen check                    # Compare with ./generated
  modelgen check --out build        # Compare with ./build
`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cfg.Out
		if checkOut != "" {
			out = checkOut
		}
		pending, err := checkProject(out)
		if err != nil {
			fail("Check failed", err)
		}
		if pending > 0 {
			fmt.Printf("❌ %d generated files are out of date, run modelgen generate\n", pending)
			os.Exit(1)
		}
		fmt.Println("✅ Generated project is up to date")
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkOut, "out", "o", "", "Directory the project was generated into")
}

func checkProject(out string) (int, error) {
	p, err := loadProject()
	if err != nil {
		return 0, err
	}
	root, err := p.generate()
	if err != nil {
		return 0, err
	}
	ops, err := diff.DiffTree(appFs, out, root)
	if err != nil {
		return 0, err
	}
	printOperations(ops)
	return len(diff.Pending(ops)), nil
}
