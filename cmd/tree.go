package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/ui"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the generated file tree",
	Long: `Print the tree of files the schema generates, the file shown first
and the file defining each model. Nothing is written.

Examples:
  modelgen tree
  modelgen tree --schema blog.yml
`,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustProject()
		root, err := p.generate()
		if err != nil {
			fail("Generating project", err)
		}
		if err := printTree(p, root); err != nil {
			fail("Printing tree", err)
		}
	},
}

func printTree(p *project, root files.Item) error {
	tree, err := ui.Tree(root)
	if err != nil {
		return err
	}
	fmt.Println(ui.Title(root.ItemName(), p.framework.DisplayName()+", "+p.dbOptions.SQLDialect.DisplayName()))
	fmt.Println(tree)

	if def, ok := p.framework.DefaultFile(root); ok {
		ui.Info(os.Stdout, "Default file: %s", def)
	}

	rows := make([][]string, 0, len(p.schema.Models))
	for _, m := range p.schema.Models {
		path, ok := p.framework.DefaultModelFile(m, root)
		if !ok {
			path = "-"
		}
		rows = append(rows, []string{m.Name, path})
	}
	if len(rows) == 0 {
		return nil
	}
	table, err := ui.Table([]string{"Model", "File"}, rows)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(table)
	return nil
}
