package naming

import "github.com/ridoystarlord/modelgen/database"

// TableName derives the table name of a model: the model name in the
// configured noun form, cased per the configured style.
func TableName(modelName string, opts database.DbOptions) string {
	return ToCase(opts.CaseStyle, ToNounForm(opts.NounForm, modelName))
}

// FileName derives the base file name (without extension) of a model
// definition: the singular model name cased per the configured style.
func FileName(modelName string, opts database.DbOptions) string {
	return ToCase(opts.CaseStyle, Singular(modelName))
}

// ColumnName cases a field name per the configured style.
func ColumnName(fieldName string, opts database.DbOptions) string {
	return ToCase(opts.CaseStyle, fieldName)
}

// AttributeName is the property name used in generated model code, which
// is always camel case regardless of the column style.
func AttributeName(fieldName string) string {
	return CamelCase(fieldName)
}

// ForeignKeyName derives the column referencing a model: postId, post_id
// or PostId for a model named "Post".
func ForeignKeyName(modelName string, opts database.DbOptions) string {
	return ColumnName(Singular(modelName)+" id", opts)
}

// ForeignKeyAttribute is the camel case attribute of ForeignKeyName.
func ForeignKeyAttribute(modelName string) string {
	return AttributeName(Singular(modelName) + " id")
}

// ModelClassName is the singular Pascal case class name of a model.
func ModelClassName(modelName string) string {
	return PascalCase(Singular(modelName))
}

// AccessorName names an association accessor after its target: plural
// for to-many associations, singular otherwise.
func AccessorName(targetName string, many bool) string {
	if many {
		return CamelCase(Plural(targetName))
	}
	return CamelCase(Singular(targetName))
}

// JoinTableName derives the implied join table of a many-to-many
// relationship between a and b: the singular of the first name in
// normalized order followed by the second name in the configured noun
// form. Swapping a and b yields the same name.
func JoinTableName(a, b string, opts database.DbOptions) string {
	if na, nb := Normalize(a), Normalize(b); nb < na || (nb == na && b < a) {
		a, b = b, a
	}
	return ToCase(opts.CaseStyle, Singular(a)+" "+ToNounForm(opts.NounForm, b))
}
