package sequelize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/codegen"
	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/docs"
	"github.com/ridoystarlord/modelgen/naming"
	"github.com/ridoystarlord/modelgen/plan"
)

// Package versions written to package.json.
const (
	sequelizeVersion    = "^6.37.3"
	sequelizeCLIVersion = "^6.6.2"
)

var dialectDrivers = map[database.SQLDialect]map[string]string{
	database.Postgres: {"pg": "^8.12.0", "pg-hstore": "^2.3.4"},
	database.MySQL:    {"mysql2": "^3.10.1"},
	database.MariaDB:  {"mariadb": "^3.3.1"},
	database.SQLite:   {"sqlite3": "^5.1.7"},
	database.MSSQL:    {"tedious": "^18.2.0"},
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Description     string            `json:"description,omitempty"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func packageFile(name string, d database.SQLDialect) string {
	deps := map[string]string{"sequelize": sequelizeVersion}
	for pkg, v := range dialectDrivers[d] {
		deps[pkg] = v
	}
	pkg := packageJSON{
		Name:    name,
		Version: "1.0.0",
		Private: true,
		Main:    "models/index.js",
		Scripts: map[string]string{
			"db:migrate":      "sequelize-cli db:migrate",
			"db:migrate:undo": "sequelize-cli db:migrate:undo:all",
		},
		Dependencies:    deps,
		DevDependencies: map[string]string{"sequelize-cli": sequelizeCLIVersion},
	}
	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("sequelize: encode package.json: %v", err))
	}
	return string(out) + "\n"
}

func configFile(name string, d database.SQLDialect) string {
	env := func(env string) string {
		var conn []string
		if d == database.SQLite {
			conn = []string{
				fmt.Sprintf("storage: process.env.DB_STORAGE || %s,", codegen.Quote(naming.SnakeCase(name+" "+env)+".sqlite")),
			}
		} else {
			conn = []string{
				"host: process.env.DB_HOST || 'localhost',",
				"port: process.env.DB_PORT,",
				fmt.Sprintf("database: process.env.DB_NAME || %s,", codegen.Quote(naming.SnakeCase(name+" "+env))),
				"username: process.env.DB_USER,",
				"password: process.env.DB_PASSWORD,",
			}
		}
		return codegen.Lines([]string{
			env + ": {",
			codegen.Lines(append([]string{"dialect: " + codegen.Quote(string(d)) + ","}, conn...), codegen.Depth(2)),
			"},",
		})
	}
	return codegen.Lines([]string{
		"module.exports = {",
		codegen.Lines([]string{env("development"), env("test"), env("production")}, codegen.Depth(2)),
		"}",
	}) + "\n"
}

const sequelizerc = `const path = require('path')

module.exports = {
  config: path.resolve('config', 'config.js'),
  'models-path': path.resolve('models'),
  'migrations-path': path.resolve('migrations'),
}
`

const gitignore = `node_modules/
.env
*.sqlite
`

const modelsIndex = `'use strict'

const fs = require('fs')
const path = require('path')
const Sequelize = require('sequelize')

const basename = path.basename(__filename)
const env = process.env.NODE_ENV || 'development'
const config = require(path.join(__dirname, '..', 'config', 'config.js'))[env]
const db = {}

const sequelize = new Sequelize(config.database, config.username, config.password, config)

fs.readdirSync(__dirname)
  .filter((file) => !file.startsWith('.') && file !== basename && file.endsWith('.js'))
  .forEach((file) => {
    const model = require(path.join(__dirname, file))(sequelize, Sequelize.DataTypes)
    db[model.name] = model
  })

Object.keys(db).forEach((modelName) => {
  if (db[modelName].associate) {
    db[modelName].associate(db)
  }
})

db.sequelize = sequelize
db.Sequelize = Sequelize

module.exports = db
`

func readme(p plan.Plan, d database.SQLDialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.SchemaName)
	fmt.Fprintf(&b, "Sequelize project for %s generated by modelgen.\n\n", d.DisplayName())

	b.WriteString("## Getting started\n\n")
	b.WriteString("```sh\nnpm install\nnpm run db:migrate\n```\n\n")
	b.WriteString("Connection settings are read from `config/config.js`, which takes ")
	b.WriteString("`DB_HOST`, `DB_PORT`, `DB_NAME`, `DB_USER` and `DB_PASSWORD` from the environment.\n\n")

	b.WriteString("## Models\n\n")
	b.WriteString("| Model | Table |\n|-------|-------|\n")
	for _, t := range p.Tables {
		if !t.IsJoin() {
			fmt.Fprintf(&b, "| %s | `%s` |\n", t.ClassName, t.Name)
		}
	}
	b.WriteString("\n## Entity relationship diagram\n\n")
	b.WriteString("```mermaid\n")
	b.WriteString(docs.MermaidDiagram(p))
	b.WriteString("```\n")
	return b.String()
}
