package sequelize

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ridoystarlord/modelgen/codegen"
	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/naming"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
)

const modelTemplate = `const { Model } = require('sequelize')

module.exports = (sequelize, DataTypes) => {
  class {{.ClassName}} extends Model {
    /**
     * Called by models/index.js once every model is defined.
     */
    static associate(models) {
{{- range .Associations}}
      {{.}}
{{- end}}
    }
  }
  {{.ClassName}}.init(
    {
{{- range .Attributes}}
{{indent 6 .}}
{{- end}}
    },
    {
{{- range .Options}}
      {{.}}
{{- end}}
    },
  )
  return {{.ClassName}}
}
`

var modelTmpl = template.Must(template.New("model").Funcs(template.FuncMap{
	"indent": codegen.Indent,
}).Parse(modelTemplate))

type modelData struct {
	ClassName    string
	Associations []string
	Attributes   []string
	Options      []string
}

func modelFile(t plan.Table, opts database.DbOptions) string {
	data := modelData{ClassName: t.ClassName}
	for _, r := range t.Relations {
		data.Associations = append(data.Associations, association(r))
	}
	for _, c := range t.Columns {
		data.Attributes = append(data.Attributes, attribute(c, opts.SQLDialect))
	}
	data.Options = modelOptions(t, opts)

	var b strings.Builder
	if err := modelTmpl.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("sequelize: render model %s: %v", t.ClassName, err))
	}
	return b.String()
}

var associationMethods = map[schema.AssociationTypeType]string{
	schema.BelongsTo:     "belongsTo",
	schema.HasOne:        "hasOne",
	schema.HasMany:       "hasMany",
	schema.BelongsToMany: "belongsToMany",
}

func association(r plan.Relation) string {
	props := []string{"as: " + codegen.Quote(r.As)}
	if r.Through != "" {
		if r.ThroughModel {
			props = append(props, "through: models."+r.Through)
		} else {
			props = append(props, "through: "+codegen.Quote(r.Through))
		}
	}
	props = append(props, "foreignKey: "+codegen.Quote(r.ForeignKey))
	if r.OtherKey != "" {
		props = append(props, "otherKey: "+codegen.Quote(r.OtherKey))
	}
	return fmt.Sprintf("this.%s(models.%s, { %s })",
		associationMethods[r.Type], r.TargetClass, strings.Join(props, ", "))
}

func attribute(c plan.Column, d database.SQLDialect) string {
	props := []string{"type: " + dataType(c.Type, d, modelTypes) + ","}
	props = append(props, columnProps(c, modelTypes)...)
	if c.Name != c.Attribute {
		props = append(props, "field: "+codegen.Quote(c.Name)+",")
	}
	if c.Comment != "" {
		props = append(props, "comment: "+codegen.Quote(c.Comment)+",")
	}
	return codegen.Lines([]string{
		objectKey(c.Attribute) + ": {",
		codegen.Lines(props, codegen.Depth(2)),
		`},`,
	})
}

func modelOptions(t plan.Table, opts database.DbOptions) []string {
	options := []string{
		"sequelize,",
		"modelName: " + codegen.Quote(t.ClassName) + ",",
		"tableName: " + codegen.Quote(t.Name) + ",",
		fmt.Sprintf("timestamps: %t,", t.Timestamps),
		fmt.Sprintf("paranoid: %t,", t.Paranoid),
		fmt.Sprintf("underscored: %t,", opts.CaseStyle == database.Snake),
	}
	if t.Timestamps {
		options = append(options,
			"createdAt: "+codegen.Quote(naming.AttributeName(opts.CreatedAtColumn))+",",
			"updatedAt: "+codegen.Quote(naming.AttributeName(opts.UpdatedAtColumn))+",",
		)
		if t.Paranoid {
			options = append(options, "deletedAt: "+codegen.Quote(naming.AttributeName(opts.DeletedAtColumn))+",")
		}
	}
	return options
}
