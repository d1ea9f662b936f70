package sequelize

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/codegen"
	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
)

// migrationFileName is "<timestamp>-create-<table>.js" or
// "<timestamp>-add-<table>-foreign-keys.js".
func migrationFileName(m plan.Migration) string {
	return fmt.Sprintf("%s-%s.js", m.Timestamp, m.Name())
}

func migrationFile(m plan.Migration, d database.SQLDialect) string {
	var up, down []string
	switch m.Kind {
	case plan.CreateTable:
		up = []string{createTable(m.Table, d)}
		for _, idx := range m.Table.Indexes {
			up = append(up, addIndex(m.Table.Name, idx))
		}
		down = []string{fmt.Sprintf("await queryInterface.dropTable(%s)", codegen.Quote(m.Table.Name))}
	case plan.AddForeignKeys:
		for _, fk := range m.ForeignKeys {
			up = append(up, addConstraint(fk))
		}
		for i := len(m.ForeignKeys) - 1; i >= 0; i-- {
			fk := m.ForeignKeys[i]
			down = append(down, fmt.Sprintf("await queryInterface.removeConstraint(%s, %s)",
				codegen.Quote(fk.Table), codegen.Quote(fk.Name)))
		}
	default:
		panic(plan.InvariantError{Msg: fmt.Sprintf("unsupported migration %q", m.Kind)})
	}

	return codegen.Lines([]string{
		`const { QueryInterface, Sequelize } = require('sequelize')`,
		codegen.Blank(),
		`module.exports = {`,
		migrationStep("up", up),
		migrationStep("down", down),
		`}`,
	}) + "\n"
}

func migrationStep(name string, body []string) string {
	return codegen.Lines([]string{
		`/**`,
		` * @param {QueryInterface} queryInterface`,
		` * @param {Sequelize} Sequelize`,
		` */`,
		name + `: async (queryInterface, Sequelize) => {`,
		codegen.Lines(body, codegen.Depth(2)),
		`},`,
	}, codegen.Depth(2))
}

func createTable(t plan.Table, d database.SQLDialect) string {
	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = migrationColumn(c, d)
	}
	return codegen.Lines([]string{
		fmt.Sprintf("await queryInterface.createTable(%s, {", codegen.Quote(t.Name)),
		codegen.Lines(columns, codegen.Depth(2)),
		`})`,
	})
}

func migrationColumn(c plan.Column, d database.SQLDialect) string {
	props := []string{"type: " + dataType(c.Type, d, migrationTypes) + ","}
	props = append(props, columnProps(c, migrationTypes)...)
	if c.Comment != "" {
		props = append(props, "comment: "+codegen.Quote(c.Comment)+",")
	}
	if r := c.References; r != nil {
		props = append(props,
			`references: {`,
			codegen.Lines([]string{
				"model: " + codegen.Quote(r.Table) + ",",
				"key: " + codegen.Quote(r.Column) + ",",
			}, codegen.Depth(2)),
			`},`,
		)
		if r.OnDelete != "" {
			props = append(props, "onDelete: "+codegen.Quote(r.OnDelete)+",")
		}
		if r.OnUpdate != "" {
			props = append(props, "onUpdate: "+codegen.Quote(r.OnUpdate)+",")
		}
	}
	return codegen.Lines([]string{
		objectKey(c.Name) + ": {",
		codegen.Lines(props, codegen.Depth(2)),
		`},`,
	})
}

// columnProps are the options shared by migration columns and model
// attributes.
func columnProps(c plan.Column, ns string) []string {
	var props []string
	if c.PrimaryKey {
		props = append(props, "primaryKey: true,")
	}
	if c.Type.AutoIncrement {
		props = append(props, "autoIncrement: true,")
	}
	if !c.AllowNull {
		props = append(props, "allowNull: false,")
	}
	if c.Unique && !c.PrimaryKey {
		props = append(props, "unique: true,")
	}
	if def := defaultValue(c.Type, ns); def != "" {
		props = append(props, "defaultValue: "+def+",")
	}
	return props
}

func addIndex(table string, idx plan.Index) string {
	fields := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		fields[i] = indexField(c)
	}
	opts := []string{"name: " + codegen.Quote(idx.Name)}
	if idx.Unique {
		opts = append(opts, "unique: true")
	}
	if idx.Using != "" && idx.Using != schema.BTree {
		opts = append(opts, "using: "+codegen.Quote(string(idx.Using)))
	}
	return fmt.Sprintf("await queryInterface.addIndex(%s, [%s], { %s })",
		codegen.Quote(table), strings.Join(fields, ", "), strings.Join(opts, ", "))
}

func indexField(c plan.IndexColumn) string {
	if c.Length == nil && c.Order == "" && c.Collate == "" && c.Operator == "" {
		return codegen.Quote(c.Name)
	}
	props := []string{"name: " + codegen.Quote(c.Name)}
	if c.Length != nil {
		props = append(props, fmt.Sprintf("length: %d", *c.Length))
	}
	if c.Order != "" {
		props = append(props, "order: "+codegen.Quote(string(c.Order)))
	}
	if c.Collate != "" {
		props = append(props, "collate: "+codegen.Quote(c.Collate))
	}
	if c.Operator != "" {
		props = append(props, "operator: "+codegen.Quote(c.Operator))
	}
	return "{ " + strings.Join(props, ", ") + " }"
}

func addConstraint(fk plan.ForeignKey) string {
	r := fk.References
	props := []string{
		"fields: [" + codegen.Quote(fk.Column) + "],",
		"type: 'foreign key',",
		"name: " + codegen.Quote(fk.Name) + ",",
		"references: {",
		codegen.Lines([]string{
			"table: " + codegen.Quote(r.Table) + ",",
			"field: " + codegen.Quote(r.Column) + ",",
		}, codegen.Depth(2)),
		"},",
	}
	if r.OnDelete != "" {
		props = append(props, "onDelete: "+codegen.Quote(r.OnDelete)+",")
	}
	if r.OnUpdate != "" {
		props = append(props, "onUpdate: "+codegen.Quote(r.OnUpdate)+",")
	}
	return codegen.Lines([]string{
		fmt.Sprintf("await queryInterface.addConstraint(%s, {", codegen.Quote(fk.Table)),
		codegen.Lines(props, codegen.Depth(2)),
		`})`,
	})
}

// objectKey renders name as a JavaScript object key, quoting it unless it
// is a plain identifier.
func objectKey(name string) string {
	for i, r := range name {
		ident := r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')
		if !ident {
			return codegen.Quote(name)
		}
	}
	if name == "" {
		return "''"
	}
	return name
}
