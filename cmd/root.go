package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/config"
	"github.com/ridoystarlord/modelgen/debug"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "0.1.0"

var (
	appFs = afero.NewOsFs()
	cfg   *config.Config

	verbose    bool
	configFile string
	schemaFlag string
)

var rootCmd = &cobra.Command{
	Use:   "modelgen",
	Short: "Generate ORM projects from an abstract data model",
	Long: `modelgen turns a schema of models, fields, associations and indexes
into a ready to run project for a persistence framework.

Examples:

  modelgen init
  modelgen validate
  modelgen generate --out generated
  modelgen show models/post.js
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.Init(verbose)

		var err error
		if cfg, err = config.Load(appFs, configFile); err != nil {
			return err
		}
		if schemaFlag != "" {
			cfg.Schema = schemaFlag
		}
		debug.Debug("configuration loaded", "file", cfg.File, "schema", cfg.Schema, "out", cfg.Out)
		return cfg.CheckVersion(version)
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default .modelgen.yaml)")
	rootCmd.PersistentFlags().StringVarP(&schemaFlag, "schema", "s", "", "Schema file (default from config, then schema.yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(versionCmd)
}
