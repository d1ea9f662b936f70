package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/loader"
	"github.com/ridoystarlord/modelgen/schema"
)

var (
	initYes   bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example schema and a .modelgen.yaml config",
	Long: `Initialize a modelgen project with an example blog schema.

The schema name and database options are asked interactively unless
--yes is given, in which case the defaults are used.

Examples:
  modelgen init                      # Ask for the name and options
  modelgen init --yes                # Use defaults
  modelgen init -s models.yml --yes  # Write the schema to models.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		answers := initAnswers{
			Name:      "Blog",
			Dialect:   string(database.DefaultDbOptions.SQLDialect),
			CaseStyle: string(database.DefaultDbOptions.CaseStyle),
			NounForm:  string(database.DefaultDbOptions.NounForm),
		}
		if !initYes {
			if err := survey.Ask(initQuestions(answers), &answers); err != nil {
				fail("Reading answers", err)
			}
		}
		if err := initProject(appFs, cfg.Schema, ".modelgen.yaml", answers, initForce); err != nil {
			fail("Initializing project", err)
		}
		fmt.Printf("✅ Schema written to %s\n", cfg.Schema)
		fmt.Println("✅ Config written to .modelgen.yaml")
		fmt.Println("\nNext steps:")
		fmt.Println("  modelgen validate")
		fmt.Println("  modelgen generate")
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults without prompting")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

type initAnswers struct {
	Name      string `survey:"name"`
	Dialect   string `survey:"dialect"`
	CaseStyle string `survey:"case_style"`
	NounForm  string `survey:"noun_form"`
}

func initQuestions(defaults initAnswers) []*survey.Question {
	dialects := make([]string, len(database.Dialects))
	for i, d := range database.Dialects {
		dialects[i] = string(d)
	}
	return []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Schema name:", Default: defaults.Name},
			Validate: survey.Required,
		},
		{
			Name: "dialect",
			Prompt: &survey.Select{
				Message: "SQL dialect:",
				Options: dialects,
				Default: defaults.Dialect,
				Description: func(value string, index int) string {
					return database.SQLDialect(value).DisplayName()
				},
			},
		},
		{
			Name: "case_style",
			Prompt: &survey.Select{
				Message: "Identifier case style:",
				Options: []string{string(database.Camel), string(database.Snake), string(database.Pascal)},
				Default: defaults.CaseStyle,
			},
		},
		{
			Name: "noun_form",
			Prompt: &survey.Select{
				Message: "Table names:",
				Options: []string{string(database.Plural), string(database.Singular)},
				Default: defaults.NounForm,
			},
		},
	}
}

// initConfig is the subset of the config file init writes.
type initConfig struct {
	Schema string `yaml:"schema"`
	DB     struct {
		Dialect   string `yaml:"dialect"`
		CaseStyle string `yaml:"case_style"`
		NounForm  string `yaml:"noun_form"`
	} `yaml:"db"`
}

func initProject(fs afero.Fs, schemaPath, configPath string, a initAnswers, force bool) error {
	if !force {
		for _, p := range []string{schemaPath, configPath} {
			if ok, err := afero.Exists(fs, p); err != nil {
				return err
			} else if ok {
				return fmt.Errorf("%s already exists, use --force to overwrite", p)
			}
		}
	}

	if err := loader.Save(fs, schemaPath, loader.Example(a.Name, schema.NewFactory())); err != nil {
		return err
	}

	var c initConfig
	c.Schema = schemaPath
	c.DB.Dialect = a.Dialect
	c.DB.CaseStyle = a.CaseStyle
	c.DB.NounForm = a.NounForm
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := afero.WriteFile(fs, configPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	return nil
}
