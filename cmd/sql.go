package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/generator"
	"github.com/ridoystarlord/modelgen/ui"
)

var (
	sqlDialect   string
	sqlRollback  bool
	sqlHighlight bool
	sqlOutput    string
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Print the SQL DDL of the schema",
	Long: `Print the CREATE TABLE, foreign key and index statements the generated
migrations perform, in migration order.

Examples:
  modelgen sql                       # Dialect from config
  modelgen sql --dialect mysql
  modelgen sql --rollback            # The reverse statements
  modelgen sql --output schema.sql   # Up and down sections in one file
`,
	Run: func(cmd *cobra.Command, args []string) {
		p := mustProject()
		if sqlDialect != "" {
			d, err := database.ParseSQLDialect(sqlDialect)
			if err != nil {
				fail("Parsing dialect", err)
			}
			p.dbOptions.SQLDialect = d
		}
		pl, err := p.buildPlan()
		if err != nil {
			fail("Planning schema", err)
		}

		if sqlOutput != "" {
			script, err := generator.Script(pl, p.dbOptions.SQLDialect)
			if err != nil {
				fail("Generating SQL", err)
			}
			if err := afero.WriteFile(appFs, sqlOutput, []byte(script), 0o644); err != nil {
				fail("Writing SQL", err)
			}
			fmt.Printf("✅ SQL script saved to: %s\n", sqlOutput)
			return
		}

		var stmts []string
		if sqlRollback {
			stmts, err = generator.GenerateRollbackSQL(pl.Migrations, p.dbOptions.SQLDialect)
		} else {
			stmts, err = generator.GenerateSQL(pl.Migrations, p.dbOptions.SQLDialect)
		}
		if err != nil {
			fail("Generating SQL", err)
		}

		out := strings.Join(stmts, "\n") + "\n"
		if sqlHighlight {
			if out, err = ui.Highlight(out, files.SQL); err != nil {
				fail("Highlighting SQL", err)
			}
		}
		fmt.Fprint(os.Stdout, out)
	},
}

func init() {
	sqlCmd.Flags().StringVarP(&sqlDialect, "dialect", "d", "", "SQL dialect (postgres, mysql, mariadb, sqlite, mssql)")
	sqlCmd.Flags().BoolVar(&sqlRollback, "rollback", false, "Print the rollback statements instead")
	sqlCmd.Flags().BoolVar(&sqlHighlight, "color", false, "Highlight the output")
	sqlCmd.Flags().StringVarP(&sqlOutput, "output", "o", "", "Write the up and down script to a file")
}
