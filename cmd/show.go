package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print one generated file",
	Long: `Print a generated file, highlighted, and the model it belongs to.

The path may include the project directory or be relative to it. Without
a path the framework's default file is shown.

Examples:
  modelgen show                        # The default file
  modelgen show models/post.js
  modelgen show blog/README.md
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := mustProject()
		root, err := p.generate()
		if err != nil {
			fail("Generating project", err)
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		}
		resolved, f, err := resolveFile(p, root, path)
		if err != nil {
			fail("Showing file", err)
		}
		if err := ui.ShowFile(os.Stdout, resolved, f); err != nil {
			fail("Showing file", err)
		}
		if m, ok := p.framework.ModelFromPath(resolved, p.schema); ok {
			ui.Info(os.Stdout, "Model: %s", m.Name)
		}
	},
}

// resolveFile finds the file at path, which may omit the root name. An
// empty path selects the default file.
func resolveFile(p *project, root files.Item, path string) (string, *files.File, error) {
	if path == "" {
		def, ok := p.framework.DefaultFile(root)
		if !ok {
			return "", nil, fmt.Errorf("the project has no files")
		}
		path = def
	}
	for _, candidate := range []string{path, files.Join(root.ItemName(), path)} {
		it, ok := files.Lookup(root, candidate)
		if !ok {
			continue
		}
		f, ok := it.(*files.File)
		if !ok {
			return "", nil, fmt.Errorf("%s is a directory", candidate)
		}
		return candidate, f, nil
	}
	return "", nil, fmt.Errorf("no generated file at %s", path)
}
