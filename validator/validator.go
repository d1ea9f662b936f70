// Package validator checks schemas before generation. Every check runs;
// problems are collected into error trees instead of stopping at the
// first one.
package validator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/naming"
	"github.com/ridoystarlord/modelgen/schema"
)

// MaxNameLength is the longest identifier most SQL dialects accept.
const MaxNameLength = 63

const (
	msgNameRequired      = "Name is required"
	msgNameTaken         = "Name must be unique"
	msgSourceMismatch    = "Association must start at the model that owns it"
	msgTargetMissing     = "Target model does not exist"
	msgAliasRequired     = "Alias is required for an association of a model with itself"
	msgAliasTaken        = "Another association uses the same name"
	msgThroughMissing    = "Through model does not exist"
	msgThroughTableName  = "Through table name is required"
	msgIndexNoFields     = "Index must include at least one field"
	msgParanoidTimestamp = "Paranoid models must have timestamps"
	msgNameReserved      = "Name is used by a generated column"
)

var msgNameTooLong = fmt.Sprintf("Name must be at most %d characters", MaxNameLength)

// ValidateSchema validates s against the other schemas known to the caller
// and every model of s, assuming the default timestamp column names.
func ValidateSchema(s schema.Schema, all []schema.Schema) SchemaErrors {
	return ValidateSchemaWith(s, all, database.DefaultDbOptions)
}

// ValidateSchemaWith is ValidateSchema for the timestamp column names of
// opts. Table names are checked under every case style and noun form.
func ValidateSchemaWith(s schema.Schema, all []schema.Schema, opts database.DbOptions) SchemaErrors {
	opts = opts.WithDefaults()
	errs := SchemaErrors{Name: validateSchemaName(s, all)}
	for _, m := range s.Models {
		if me := ValidateModelWith(m, s, opts); !me.Empty() {
			if errs.Models == nil {
				errs.Models = map[string]ModelErrors{}
			}
			errs.Models[m.ID] = me
		}
	}
	return errs
}

func validateSchemaName(s schema.Schema, all []schema.Schema) string {
	if strings.TrimSpace(s.Name) == "" {
		return msgNameRequired
	}
	key := naming.Normalize(s.Name)
	for _, other := range all {
		if other.ID == s.ID {
			continue
		}
		if naming.Normalize(other.Name) == key {
			return msgNameTaken
		}
	}
	return ""
}

// ValidateModel validates m in the context of the schema that contains it.
func ValidateModel(m schema.Model, s schema.Schema) ModelErrors {
	return ValidateModelWith(m, s, database.DefaultDbOptions)
}

// ValidateModelWith is ValidateModel for the timestamp column names of opts.
func ValidateModelWith(m schema.Model, s schema.Schema, opts database.DbOptions) ModelErrors {
	opts = opts.WithDefaults()
	errs := ModelErrors{Name: validateModelName(m, s)}

	seen := map[string]bool{}
	reserved := generatedColumns(m, opts)
	for _, f := range m.Fields {
		fe := validateField(f, seen, reserved)
		if !fe.Empty() {
			if errs.Fields == nil {
				errs.Fields = map[string]FieldErrors{}
			}
			errs.Fields[f.ID] = fe
		}
	}

	accessors := accessorCounts(m, s)
	for _, a := range m.Associations {
		ae := validateAssociation(a, m, s, accessors, opts)
		if !ae.Empty() {
			if errs.Associations == nil {
				errs.Associations = map[string]AssociationErrors{}
			}
			errs.Associations[a.ID] = ae
		}
	}

	indexNames := indexNameCounts(m, s)
	for _, idx := range m.Indexes {
		ie := validateIndex(idx, m, indexNames)
		if !ie.Empty() {
			if errs.Indexes == nil {
				errs.Indexes = map[string]IndexErrors{}
			}
			errs.Indexes[idx.ID] = ie
		}
	}

	if m.Paranoid && !m.Timestamps {
		errs.Paranoid = msgParanoidTimestamp
	}
	return errs
}

func validateModelName(m schema.Model, s schema.Schema) string {
	if msg := validateName(m.Name); msg != "" {
		return msg
	}
	keys := tableKeys(m.Name)
	for _, other := range s.Models {
		if other.ID != m.ID && sameTable(keys, tableKeys(other.Name)) {
			return msgNameTaken
		}
	}
	return ""
}

// tableKeys folds a model name into the table name it gets under each noun
// form, in the order of database.NounForms. Case style is folded away, so
// "User", "users" and "user_s" share keys, and so do "Axis" and "Axe",
// which differ in the singular but are both "axes" in the plural.
func tableKeys(name string) []string {
	keys := make([]string, len(database.NounForms))
	for i, form := range database.NounForms {
		keys[i] = naming.Normalize(naming.ToNounForm(form, name))
	}
	return keys
}

func sameTable(a, b []string) bool {
	for i := range a {
		if a[i] == b[i] {
			return true
		}
	}
	return false
}

// generatedColumns holds the normalized names of the columns the planner
// adds to the table of m next to its fields.
func generatedColumns(m schema.Model, opts database.DbOptions) map[string]bool {
	cols := map[string]bool{}
	if len(m.PrimaryKeys()) == 0 {
		cols[naming.Normalize("id")] = true
	}
	if m.Timestamps {
		for _, name := range timestampColumns(m.Paranoid, opts) {
			cols[naming.Normalize(name)] = true
		}
	}
	return cols
}

func timestampColumns(paranoid bool, opts database.DbOptions) []string {
	cols := []string{opts.CreatedAtColumn, opts.UpdatedAtColumn}
	if paranoid {
		cols = append(cols, opts.DeletedAtColumn)
	}
	return cols
}

func validateName(name string) string {
	if strings.TrimSpace(name) == "" || len(naming.Words(name)) == 0 {
		return msgNameRequired
	}
	if len(name) > MaxNameLength {
		return msgNameTooLong
	}
	return ""
}

// validateField records the normalized name of f in seen, so the second of
// two equally named fields is the one reported.
func validateField(f schema.Field, seen, reserved map[string]bool) FieldErrors {
	fe := FieldErrors{Name: validateName(f.Name), Type: validateDataType(f.Type)}
	if fe.Name == "" {
		key := naming.Normalize(f.Name)
		switch {
		case reserved[key]:
			fe.Name = msgNameReserved
		case seen[key]:
			fe.Name = msgNameTaken
		}
		seen[key] = true
	}
	return fe
}

func validateDataType(dt schema.DataType) string {
	switch dt.Type {
	case schema.TypeString:
		if dt.Length != nil && *dt.Length <= 0 {
			return "String length must be positive"
		}
	case schema.TypeDecimal:
		if dt.Precision != nil && *dt.Precision <= 0 {
			return "Decimal precision must be positive"
		}
		if dt.Scale != nil && *dt.Scale < 0 {
			return "Decimal scale must not be negative"
		}
		if dt.Scale != nil && (dt.Precision == nil || *dt.Scale > *dt.Precision) {
			return "Decimal scale must not exceed precision"
		}
	case schema.TypeEnum:
		if len(dt.Values) == 0 {
			return "Enum must have at least one value"
		}
		seen := map[string]bool{}
		for _, v := range dt.Values {
			if strings.TrimSpace(v) == "" {
				return "Enum values must not be blank"
			}
			if seen[v] {
				return fmt.Sprintf("Enum value %q is repeated", v)
			}
			seen[v] = true
		}
	case schema.TypeArray:
		if dt.ArrayType == nil {
			return "Array must have an element type"
		}
		if msg := validateDataType(*dt.ArrayType); msg != "" {
			return "Array element: " + msg
		}
	case schema.TypeUUID:
		if dt.DefaultVersion != "" && dt.DefaultVersion != schema.UUIDv1 && dt.DefaultVersion != schema.UUIDv4 {
			return fmt.Sprintf("Unknown UUID version %q", dt.DefaultVersion)
		}
	default:
		for _, t := range schema.DataTypeTypes {
			if dt.Type == t {
				return ""
			}
		}
		return fmt.Sprintf("Unknown data type %q", dt.Type)
	}
	return ""
}

// AccessorName is the name under which a generated model exposes the
// association: the alias when set, otherwise the target model name in the
// singular or plural form matching the association type. ok is false when
// the target does not exist.
func AccessorName(a schema.Association, s schema.Schema) (name string, ok bool) {
	if alias := a.AliasOrEmpty(); strings.TrimSpace(alias) != "" {
		return naming.CamelCase(alias), true
	}
	target, ok := s.FindModel(a.TargetModelID)
	if !ok {
		return "", false
	}
	return naming.AccessorName(target.Name, a.IsMany()), true
}

func accessorCounts(m schema.Model, s schema.Schema) map[string]int {
	counts := map[string]int{}
	for _, a := range m.Associations {
		if name, ok := AccessorName(a, s); ok {
			counts[naming.Normalize(name)]++
		}
	}
	return counts
}

func validateAssociation(a schema.Association, m schema.Model, s schema.Schema, accessors map[string]int, opts database.DbOptions) AssociationErrors {
	var ae AssociationErrors
	if a.SourceModelID != m.ID {
		ae.Source = msgSourceMismatch
	}
	if _, ok := s.FindModel(a.TargetModelID); !ok {
		ae.Target = msgTargetMissing
	}

	switch {
	case a.IsSelfReferential() && strings.TrimSpace(a.AliasOrEmpty()) == "":
		ae.Alias = msgAliasRequired
	default:
		if name, ok := AccessorName(a, s); ok && accessors[naming.Normalize(name)] > 1 {
			ae.Alias = msgAliasTaken
		}
	}

	if a.Type.Type == schema.BelongsToMany && a.Type.Through != nil {
		switch a.Type.Through.Type {
		case schema.ThroughModel:
			if _, ok := s.FindModel(a.Type.Through.ModelID); !ok {
				ae.Through = msgThroughMissing
			}
		case schema.ThroughTable:
			if strings.TrimSpace(a.Type.Through.Table) == "" {
				ae.Through = msgThroughTableName
			}
		}
	}
	if ae.Through == "" {
		ae.Through = joinTableCollision(a, m, s, opts)
	}
	ae.ForeignKey = reservedForeignKey(a, m, s, opts)
	return ae
}

// joinTableCollision reports an implied join table whose name would also
// be the table name of a model under some noun form. The case style of
// opts only affects the name in the message; keys ignore case.
func joinTableCollision(a schema.Association, m schema.Model, s schema.Schema, opts database.DbOptions) string {
	if a.Type.Type != schema.BelongsToMany {
		return ""
	}
	names := make([]string, len(database.NounForms))
	switch {
	case a.Type.Through != nil && a.Type.Through.Type == schema.ThroughModel:
		return ""
	case a.Type.Through != nil && a.Type.Through.Type == schema.ThroughTable:
		for i := range names {
			names[i] = a.Type.Through.Table
		}
	default:
		target, ok := s.FindModel(a.TargetModelID)
		if !ok {
			return ""
		}
		other := target.Name
		if a.IsSelfReferential() {
			other = a.AliasOrEmpty()
		}
		for i, form := range database.NounForms {
			o := opts
			o.NounForm = form
			names[i] = naming.JoinTableName(m.Name, other, o)
		}
	}
	for _, model := range s.Models {
		keys := tableKeys(model.Name)
		for i, name := range names {
			if naming.Normalize(name) == keys[i] {
				return fmt.Sprintf("Join table %q has the same name as model %q; use a through model instead", name, model.Name)
			}
		}
	}
	return ""
}

// reservedForeignKey reports an explicit foreign key that names a timestamp
// column of the table it is added to. Join tables always carry timestamps.
func reservedForeignKey(a schema.Association, m schema.Model, s schema.Schema, opts database.DbOptions) string {
	var owner schema.Model
	joinTable := false
	switch a.Type.Type {
	case schema.BelongsTo:
		owner = m
	case schema.HasOne, schema.HasMany:
		target, ok := s.FindModel(a.TargetModelID)
		if !ok {
			return ""
		}
		owner = target
	case schema.BelongsToMany:
		through := a.Type.Through
		if through != nil && through.Type == schema.ThroughModel {
			t, ok := s.FindModel(through.ModelID)
			if !ok {
				return ""
			}
			owner = t
		} else {
			joinTable = true
		}
	default:
		return ""
	}

	reserved := map[string]bool{}
	if joinTable || owner.Timestamps {
		for _, name := range timestampColumns(!joinTable && owner.Paranoid, opts) {
			reserved[naming.Normalize(name)] = true
		}
	}
	keys := []string{a.ForeignKeyOrEmpty()}
	if a.Type.Type == schema.BelongsToMany && a.Type.TargetFK != nil {
		keys = append(keys, *a.Type.TargetFK)
	}
	for _, fk := range keys {
		if fk != "" && reserved[naming.Normalize(fk)] {
			return fmt.Sprintf("Foreign key %q is a timestamp column", fk)
		}
	}
	return ""
}

// indexNameCounts counts the explicit index names of m and of the other
// models of s. Index names share one namespace per database schema.
func indexNameCounts(m schema.Model, s schema.Schema) map[string]int {
	counts := map[string]int{}
	add := func(idxs []schema.Index) {
		for _, idx := range idxs {
			if idx.Name != "" {
				counts[naming.Normalize(idx.Name)]++
			}
		}
	}
	add(m.Indexes)
	for _, other := range s.Models {
		if other.ID != m.ID {
			add(other.Indexes)
		}
	}
	return counts
}

func validateIndex(idx schema.Index, m schema.Model, names map[string]int) IndexErrors {
	var ie IndexErrors
	if idx.Name != "" {
		if len(idx.Name) > MaxNameLength {
			ie.Name = msgNameTooLong
		} else if names[naming.Normalize(idx.Name)] > 1 {
			ie.Name = msgNameTaken
		}
	}

	if len(idx.Fields) == 0 {
		ie.Fields = msgIndexNoFields
		return ie
	}
	var missing []string
	for _, f := range idx.Fields {
		if _, ok := FindField(m, f.Name); !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		ie.Fields = fmt.Sprintf("Unknown field(s): %s", strings.Join(missing, ", "))
	}
	return ie
}

// FindField looks a field up by name, ignoring case and separators.
func FindField(m schema.Model, name string) (schema.Field, bool) {
	key := naming.Normalize(name)
	if key == "" {
		return schema.Field{}, false
	}
	for _, f := range m.Fields {
		if naming.Normalize(f.Name) == key {
			return f, true
		}
	}
	return schema.Field{}, false
}
