// Package sequelize generates a Node.js project using the Sequelize ORM:
// migrations for every table, one model class per model, and the
// configuration sequelize-cli expects.
package sequelize

import (
	"strings"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/framework"
	"github.com/ridoystarlord/modelgen/naming"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
	"github.com/ridoystarlord/modelgen/validator"
)

const (
	configDir     = "config"
	migrationsDir = "migrations"
	modelsDir     = "models"
	readmeFile    = "README.md"
	indexFile     = "index.js"
)

// Framework is the Sequelize backend. The zero value is ready to use.
type Framework struct{}

var _ framework.Framework = Framework{}

func (Framework) DisplayName() string { return "Sequelize" }

func (Framework) ProjectType() framework.ProjectType { return framework.NPM }

// RootName is the name of the generated project directory.
func RootName(s schema.Schema) string {
	if name := naming.KebabCase(s.Name); name != "" {
		return name
	}
	return "project"
}

// Generate renders the project tree of a validated schema.
func (Framework) Generate(args framework.GenerateArgs) files.Item {
	opts := args.DbOptions.WithDefaults()
	p := plan.Build(args.Schema, opts)
	d := opts.SQLDialect
	name := RootName(args.Schema)

	migrations := make([]files.Item, 0, len(p.Migrations))
	for _, m := range p.Migrations {
		migrations = append(migrations, files.NewFile(migrationFileName(m), migrationFile(m, d)))
	}

	models := []files.Item{files.NewFile(indexFile, modelsIndex)}
	for _, t := range p.Tables {
		if t.IsJoin() {
			continue
		}
		models = append(models, files.NewFile(t.FileName+".js", modelFile(t, opts)))
	}

	return files.NewDirectory(name,
		files.NewFile(".gitignore", gitignore),
		files.NewFile(".sequelizerc", sequelizerc),
		files.NewFile(readmeFile, readme(p, d)),
		files.NewFile("package.json", packageFile(name, d)),
		files.NewDirectory(configDir, files.NewFile("config.js", configFile(name, d))),
		files.NewDirectory(migrationsDir, migrations...),
		files.NewDirectory(modelsDir, models...),
	)
}

// DefaultFile is the first model file, or the README when there is none.
func (Framework) DefaultFile(root files.Item) (string, bool) {
	prefix := files.Join(root.ItemName(), modelsDir) + "/"
	if p, ok := files.FirstFile(root, func(p string, _ *files.File) bool {
		return strings.HasPrefix(p, prefix) && p != prefix+indexFile
	}); ok {
		return p, true
	}
	readme := files.Join(root.ItemName(), readmeFile)
	if _, ok := files.Lookup(root, readme); ok {
		return readme, true
	}
	return "", false
}

// DefaultModelFile is the path of the model file defining model.
func (Framework) DefaultModelFile(model schema.Model, root files.Item) (string, bool) {
	key := modelKey(model.Name)
	return files.FirstFile(root, func(p string, _ *files.File) bool {
		base, ok := modelFileBase(root.ItemName(), p)
		return ok && naming.Normalize(base) == key
	})
}

// ModelFromPath maps a model file or a create-table migration back to its
// model. The options the tree was generated with are unknown, so path is
// compared with the files of every case style and noun form. Invalid
// schemas map nothing.
func (Framework) ModelFromPath(path string, s schema.Schema) (schema.Model, bool) {
	root := RootName(s)
	if !strings.HasPrefix(path, root+"/") {
		return schema.Model{}, false
	}
	if validator.HasSchemaErrors(validator.ValidateSchema(s, nil)) {
		return schema.Model{}, false
	}

	for _, cs := range database.CaseStyles {
		for _, nf := range database.NounForms {
			opts := database.DbOptions{CaseStyle: cs, NounForm: nf}.WithDefaults()
			if id, ok := producedBy(plan.Build(s, opts), root, path); ok {
				return s.FindModel(id)
			}
		}
	}
	return schema.Model{}, false
}

// producedBy returns the id of the model whose model file or create-table
// migration in p is at path.
func producedBy(p plan.Plan, root, path string) (string, bool) {
	for _, t := range p.Tables {
		if !t.IsJoin() && path == files.Join(root, modelsDir, t.FileName+".js") {
			return t.ModelID, true
		}
	}
	for _, m := range p.Migrations {
		if m.Kind == plan.CreateTable && !m.Table.IsJoin() && path == files.Join(root, migrationsDir, migrationFileName(m)) {
			return m.Table.ModelID, true
		}
	}
	return "", false
}

// modelFileBase extracts the file name of "<root>/models/<base>.js",
// excluding the models index.
func modelFileBase(root, path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, files.Join(root, modelsDir)+"/")
	if !ok || strings.Contains(rest, "/") || rest == indexFile {
		return "", false
	}
	return strings.CutSuffix(rest, ".js")
}

func modelKey(name string) string {
	return naming.Normalize(naming.Singular(name))
}
