// Package plan resolves a validated schema into the tables, columns, foreign
// keys and ordered migrations that code generators render. All cross
// references are resolved here, in one pass, so renderers never look
// anything up lazily.
package plan

import (
	"fmt"

	"github.com/ridoystarlord/modelgen/schema"
)

// ColumnKind tells generated model code how a column came to exist.
type ColumnKind string

const (
	FieldColumn      ColumnKind = "FIELD"
	ImplicitIDColumn ColumnKind = "IMPLICIT_ID"
	ForeignKeyColumn ColumnKind = "FOREIGN_KEY"
	TimestampColumn  ColumnKind = "TIMESTAMP"
)

type Reference struct {
	Table    string
	Column   string
	OnDelete string
	OnUpdate string
}

type Column struct {
	Name       string
	Attribute  string
	Kind       ColumnKind
	Type       schema.DataType
	PrimaryKey bool
	AllowNull  bool
	Unique     bool
	Comment    string
	References *Reference
}

type IndexColumn struct {
	Name     string
	Length   *int
	Order    schema.SortOrder
	Collate  string
	Operator string
}

type Index struct {
	Name    string
	Columns []IndexColumn
	Unique  bool
	Using   schema.IndexMethod
}

// Relation is an association as seen from its source model, with every
// name already derived.
type Relation struct {
	AssociationID string
	Type          schema.AssociationTypeType
	TargetModelID string
	TargetClass   string
	As            string
	ForeignKey    string // attribute name
	OtherKey      string // BelongsToMany only
	Through       string // join table name, or model class for a through model
	ThroughModel  bool
}

// Table is either the table of a model or an implied join table, in
// which case ModelID is empty.
type Table struct {
	Name       string
	ModelID    string
	ModelName  string
	ClassName  string
	FileName   string
	Comment    string
	Columns    []Column
	Indexes    []Index
	Relations  []Relation
	Timestamps bool
	Paranoid   bool
}

// IsJoin reports whether the table is an implied BelongsToMany join table.
func (t Table) IsJoin() bool {
	return t.ModelID == ""
}

// Column returns the column with the given name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PrimaryKey returns the first primary key column.
func (t Table) PrimaryKey() (Column, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}

// ForeignKeys lists the columns that reference another table.
func (t Table) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, c := range t.Columns {
		if c.References != nil {
			fks = append(fks, ForeignKey{
				Name:       constraintName(t.Name, c.Name),
				Table:      t.Name,
				Column:     c.Name,
				References: *c.References,
			})
		}
	}
	return fks
}

type ForeignKey struct {
	Name       string
	Table      string
	Column     string
	References Reference
}

func constraintName(table, column string) string {
	return fmt.Sprintf("fk_%s_%s", table, column)
}

type MigrationKind string

const (
	CreateTable    MigrationKind = "CREATE_TABLE"
	AddForeignKeys MigrationKind = "ADD_FOREIGN_KEYS"
)

// Migration is one reversible step. A CreateTable migration carries its
// table with references to tables created later removed; those are added
// by a following AddForeignKeys migration.
type Migration struct {
	Kind        MigrationKind
	Timestamp   string
	Table       Table
	ForeignKeys []ForeignKey
}

// Name is the descriptive part of the migration file name.
func (m Migration) Name() string {
	if m.Kind == AddForeignKeys {
		return fmt.Sprintf("add-%s-foreign-keys", m.Table.Name)
	}
	return fmt.Sprintf("create-%s", m.Table.Name)
}

// Plan is the resolved form of a schema.
type Plan struct {
	SchemaName string
	Tables     []Table
	Migrations []Migration
}

// ModelTable returns the table of the model with the given id.
func (p Plan) ModelTable(modelID string) (Table, bool) {
	for _, t := range p.Tables {
		if t.ModelID != "" && t.ModelID == modelID {
			return t, true
		}
	}
	return Table{}, false
}

// Table returns the table with the given name.
func (p Plan) Table(name string) (Table, bool) {
	for _, t := range p.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// CreateMigration returns the migration creating the model's table.
func (p Plan) CreateMigration(modelID string) (Migration, bool) {
	for _, m := range p.Migrations {
		if m.Kind == CreateTable && m.Table.ModelID != "" && m.Table.ModelID == modelID {
			return m, true
		}
	}
	return Migration{}, false
}

// InvariantError reports a schema that should have been rejected by
// validation. Build panics with it.
type InvariantError struct {
	Msg string
}

func (e InvariantError) Error() string {
	return "plan: invariant violated: " + e.Msg
}

func invariant(format string, args ...any) {
	panic(InvariantError{Msg: fmt.Sprintf(format, args...)})
}
