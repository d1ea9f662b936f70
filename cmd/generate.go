package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/diff"
	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/ui"
	"github.com/ridoystarlord/modelgen/watch"
)

var (
	generateOut    string
	dryRunGenerate bool
	watchGenerate  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Directory to write the project into (default from config, then generated)")
	generateCmd.Flags().BoolVar(&dryRunGenerate, "dry-run", false, "Preview the files that would be written without writing them")
	generateCmd.Flags().BoolVarP(&watchGenerate, "watch", "w", false, "Regenerate whenever the schema file changes")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the project from the schema",
	Long: `Validate the schema and write the generated project.

The project is written to <out>/<project name>. Existing files are
overwritten; files the schema no longer produces are reported but kept.

Examples:
  modelgen generate                   # Write to ./generated
  modelgen generate --out build       # Write to ./build
  modelgen generate --dry-run         # Show what would change
  modelgen generate --watch           # Regenerate on every save
`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cfg.Out
		if generateOut != "" {
			out = generateOut
		}

		if !watchGenerate {
			if err := generateOnce(out); err != nil {
				fail("Generating project", err)
			}
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		w, err := watch.New(cfg.Schema, watch.DefaultDebounce, func() error {
			if err := generateOnce(out); err != nil {
				ui.Failure(os.Stdout, "Generating project: %v", err)
			}
			return nil
		})
		if err != nil {
			fail("Watching schema", err)
		}
		defer w.Close()
		w.OnError = func(err error) { ui.Warning(os.Stdout, "Watcher: %v", err) }

		ui.Info(os.Stdout, "Watching %s, press Ctrl+C to stop", cfg.Schema)
		if err := w.Run(ctx); err != nil {
			fail("Watching schema", err)
		}
	},
}

func generateOnce(out string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	root, err := p.generate()
	if err != nil {
		return err
	}

	ops, err := diff.DiffTree(appFs, out, root)
	if err != nil {
		return err
	}

	if dryRunGenerate {
		tree, err := ui.Tree(root)
		if err != nil {
			return err
		}
		fmt.Println(ui.Title(p.framework.DisplayName()+" project", filepath.Join(out, root.ItemName())))
		fmt.Println(tree)
		printOperations(ops)
		fmt.Println("(Dry run only. No files were written.)")
		return nil
	}

	if err := files.Write(appFs, out, root); err != nil {
		return err
	}
	counts := diff.Count(ops)
	ui.Success(os.Stdout, "Project generated in %s (%d created, %d updated, %d unchanged)",
		filepath.Join(out, root.ItemName()), counts[diff.CreateFile], counts[diff.UpdateFile], counts[diff.Unchanged])
	for _, op := range ops {
		if op.Type == diff.StaleFile {
			ui.Warning(os.Stdout, "%s is no longer generated", op.Path)
		}
	}
	return nil
}

func printOperations(ops []diff.Operation) {
	symbols := map[diff.OperationType]string{
		diff.CreateFile: "+",
		diff.UpdateFile: "~",
		diff.StaleFile:  "?",
	}
	for _, op := range ops {
		if s, ok := symbols[op.Type]; ok {
			fmt.Printf("  %s %s\n", s, op.Path)
		}
	}
	counts := diff.Count(ops)
	fmt.Printf("\n%d to create, %d to update, %d unchanged, %d stale\n",
		counts[diff.CreateFile], counts[diff.UpdateFile], counts[diff.Unchanged], counts[diff.StaleFile])
}
