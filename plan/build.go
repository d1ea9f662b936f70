package plan

import (
	"strings"
	"time"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/naming"
	"github.com/ridoystarlord/modelgen/schema"
	"github.com/ridoystarlord/modelgen/validator"
)

// TimestampFormat is the layout of migration timestamps.
const TimestampFormat = "20060102150405"

const (
	cascade = "CASCADE"
	setNull = "SET NULL"
)

type builder struct {
	schema  schema.Schema
	opts    database.DbOptions
	tables  []*Table
	byModel map[string]*Table
	byName  map[string]*Table
}

// Build resolves s. s must have passed validation: dangling references
// panic with an InvariantError.
func Build(s schema.Schema, opts database.DbOptions) Plan {
	opts = opts.WithDefaults()
	b := &builder{
		schema:  s,
		opts:    opts,
		byModel: map[string]*Table{},
		byName:  map[string]*Table{},
	}

	for _, m := range s.Models {
		b.addModelTable(m)
	}
	for _, m := range s.Models {
		for _, a := range m.Associations {
			b.resolveAssociation(m, a)
		}
	}
	for _, t := range b.tables {
		if t.Timestamps {
			t.Columns = append(t.Columns, b.timestampColumns(t.Paranoid)...)
		}
	}
	for _, m := range s.Models {
		b.addIndexes(m)
	}

	p := Plan{SchemaName: s.Name}
	for _, t := range b.tables {
		p.Tables = append(p.Tables, *t)
	}
	p.Migrations = migrations(p.Tables, s.CreatedAt)
	return p
}

func (b *builder) addTable(t *Table) {
	if _, dup := b.byName[t.Name]; dup {
		invariant("two tables are named %q", t.Name)
	}
	b.tables = append(b.tables, t)
	b.byName[t.Name] = t
	if t.ModelID != "" {
		b.byModel[t.ModelID] = t
	}
}

func (b *builder) addModelTable(m schema.Model) {
	t := &Table{
		Name:       naming.TableName(m.Name, b.opts),
		ModelID:    m.ID,
		ModelName:  m.Name,
		ClassName:  naming.ModelClassName(m.Name),
		FileName:   naming.FileName(m.Name, b.opts),
		Comment:    m.Comment,
		Timestamps: m.Timestamps,
		Paranoid:   m.Paranoid,
	}
	if len(m.PrimaryKeys()) == 0 {
		t.Columns = append(t.Columns, Column{
			Name:       naming.ColumnName("id", b.opts),
			Attribute:  "id",
			Kind:       ImplicitIDColumn,
			Type:       schema.DataType{Type: schema.TypeInteger, AutoIncrement: true},
			PrimaryKey: true,
		})
	}
	for _, f := range m.Fields {
		t.Columns = append(t.Columns, Column{
			Name:       naming.ColumnName(f.Name, b.opts),
			Attribute:  naming.AttributeName(f.Name),
			Kind:       FieldColumn,
			Type:       f.Type,
			PrimaryKey: f.PrimaryKey,
			AllowNull:  !f.Required && !f.PrimaryKey,
			Unique:     f.Unique,
			Comment:    f.Comment,
		})
	}
	b.addTable(t)
}

func (b *builder) model(id string) schema.Model {
	m, ok := b.schema.FindModel(id)
	if !ok {
		invariant("model %q does not exist", id)
	}
	return m
}

func (b *builder) modelTable(id string) *Table {
	t, ok := b.byModel[id]
	if !ok {
		invariant("model %q has no table", id)
	}
	return t
}

// reference points at the primary key of t. Composite keys are referenced
// through their first column.
func reference(t *Table, onDelete string) (*Reference, schema.DataType) {
	pk, ok := t.PrimaryKey()
	if !ok {
		invariant("table %q has no primary key", t.Name)
	}
	dt := pk.Type
	dt.AutoIncrement = false
	dt.DefaultVersion = ""
	dt.DefaultNow = false
	return &Reference{Table: t.Name, Column: pk.Name, OnDelete: onDelete, OnUpdate: cascade}, dt
}

// addForeignKey adds a column named after fk to owner, or attaches the
// reference to an existing column of the same name. It returns the
// attribute name of the column.
func (b *builder) addForeignKey(owner, target *Table, fk string, primaryKey bool) string {
	name := naming.ColumnName(fk, b.opts)
	for i := range owner.Columns {
		c := &owner.Columns[i]
		if c.Name != name {
			continue
		}
		if c.References == nil {
			onDelete := setNull
			if !c.AllowNull {
				onDelete = cascade
			}
			c.References, _ = reference(target, onDelete)
		}
		return c.Attribute
	}

	onDelete := setNull
	if primaryKey {
		onDelete = cascade
	}
	ref, dt := reference(target, onDelete)
	col := Column{
		Name:       name,
		Attribute:  naming.AttributeName(fk),
		Kind:       ForeignKeyColumn,
		Type:       dt,
		PrimaryKey: primaryKey,
		AllowNull:  !primaryKey,
		References: ref,
	}
	owner.Columns = append(owner.Columns, col)
	return col.Attribute
}

func (b *builder) resolveAssociation(m schema.Model, a schema.Association) {
	target := b.model(a.TargetModelID)
	source := b.modelTable(m.ID)
	targetTable := b.modelTable(target.ID)

	as, _ := validator.AccessorName(a, b.schema)
	rel := Relation{
		AssociationID: a.ID,
		Type:          a.Type.Type,
		TargetModelID: target.ID,
		TargetClass:   targetTable.ClassName,
		As:            as,
	}

	switch a.Type.Type {
	case schema.BelongsTo:
		fk := a.ForeignKeyOrEmpty()
		if fk == "" {
			name := target.Name
			if alias := a.AliasOrEmpty(); alias != "" {
				name = alias
			}
			fk = naming.Singular(name) + " id"
		}
		rel.ForeignKey = b.addForeignKey(source, targetTable, fk, false)
	case schema.HasOne, schema.HasMany:
		fk := a.ForeignKeyOrEmpty()
		if fk == "" {
			fk = naming.Singular(m.Name) + " id"
		}
		rel.ForeignKey = b.addForeignKey(targetTable, source, fk, false)
	case schema.BelongsToMany:
		b.resolveManyToMany(m, target, a, &rel)
	default:
		invariant("association %q has unknown type %q", a.ID, a.Type.Type)
	}

	source.Relations = append(source.Relations, rel)
}

type side struct {
	model schema.Model
	name  string // name used for the join table and default key
	fk    string
	table *Table
}

func (b *builder) resolveManyToMany(m, target schema.Model, a schema.Association, rel *Relation) {
	src := side{model: m, name: m.Name, fk: a.ForeignKeyOrEmpty(), table: b.modelTable(m.ID)}
	dst := side{model: target, name: target.Name, table: b.modelTable(target.ID)}
	if a.IsSelfReferential() {
		dst.name = a.AliasOrEmpty()
		if strings.TrimSpace(dst.name) == "" {
			invariant("self-referential association %q has no alias", a.ID)
		}
	}
	if a.Type.TargetFK != nil {
		dst.fk = *a.Type.TargetFK
	}
	for _, s := range []*side{&src, &dst} {
		if s.fk == "" {
			s.fk = naming.Singular(s.name) + " id"
		}
	}

	through := a.Type.Through
	if through != nil && through.Type == schema.ThroughModel {
		owner := b.modelTable(through.ModelID)
		rel.ForeignKey = b.addForeignKey(owner, src.table, src.fk, false)
		rel.OtherKey = b.addForeignKey(owner, dst.table, dst.fk, false)
		rel.Through = owner.ClassName
		rel.ThroughModel = true
		return
	}

	first, second := src, dst
	if !sideLess(src, dst) {
		first, second = dst, src
	}

	var tableName string
	if through != nil && through.Type == schema.ThroughTable && strings.TrimSpace(through.Table) != "" {
		tableName = through.Table
	} else {
		tableName = naming.JoinTableName(first.name, second.name, b.opts)
	}

	join, ok := b.byName[tableName]
	if !ok {
		join = &Table{Name: tableName, Timestamps: true}
		b.addTable(join)
	} else if !join.IsJoin() {
		invariant("join table %q collides with the table of model %q", tableName, join.ModelName)
	}
	b.addForeignKey(join, first.table, first.fk, true)
	b.addForeignKey(join, second.table, second.fk, true)

	rel.ForeignKey = naming.AttributeName(src.fk)
	rel.OtherKey = naming.AttributeName(dst.fk)
	rel.Through = tableName
}

// sideLess orders the two sides of a join table by normalized name, then
// by model id, so both declarations of a relationship agree.
func sideLess(a, b side) bool {
	na, nb := naming.Normalize(a.name), naming.Normalize(b.name)
	if na != nb {
		return na < nb
	}
	if a.model.ID != b.model.ID {
		return a.model.ID < b.model.ID
	}
	return a.name < b.name
}

func (b *builder) timestampColumns(paranoid bool) []Column {
	ts := func(name string, allowNull bool) Column {
		return Column{
			Name:      naming.ColumnName(name, b.opts),
			Attribute: naming.AttributeName(name),
			Kind:      TimestampColumn,
			Type:      schema.DateTimeDataType(),
			AllowNull: allowNull,
		}
	}
	cols := []Column{
		ts(b.opts.CreatedAtColumn, false),
		ts(b.opts.UpdatedAtColumn, false),
	}
	if paranoid {
		cols = append(cols, ts(b.opts.DeletedAtColumn, true))
	}
	return cols
}

func (b *builder) addIndexes(m schema.Model) {
	t := b.modelTable(m.ID)
	for _, idx := range m.Indexes {
		cols := make([]IndexColumn, 0, len(idx.Fields))
		names := make([]string, 0, len(idx.Fields))
		for _, f := range idx.Fields {
			field, ok := validator.FindField(m, f.Name)
			if !ok {
				invariant("index %q of model %q references unknown field %q", idx.ID, m.Name, f.Name)
			}
			col := naming.ColumnName(field.Name, b.opts)
			names = append(names, col)
			cols = append(cols, IndexColumn{
				Name:     col,
				Length:   f.Length,
				Order:    f.Order,
				Collate:  f.Collate,
				Operator: f.Operator,
			})
		}
		name := idx.Name
		if name == "" {
			name = naming.SnakeCase(t.Name + " " + strings.Join(names, " "))
			if idx.Prefix != "" {
				name = idx.Prefix + "_" + name
			}
		}
		using := idx.Using
		if using == "" {
			using = schema.BTree
		}
		t.Indexes = append(t.Indexes, Index{Name: name, Columns: cols, Unique: idx.Unique, Using: using})
	}
}

// migrations creates every table in order, inlining only references to
// tables created before it (or to itself), and then adds the remaining
// foreign keys table by table. Migration i is stamped base + i seconds.
func migrations(tables []Table, createdAt time.Time) []Migration {
	position := make(map[string]int, len(tables))
	for i, t := range tables {
		position[t.Name] = i
	}

	var creates, deferred []Migration
	for i, t := range tables {
		inline := t
		inline.Columns = make([]Column, len(t.Columns))
		var later []ForeignKey
		for j, c := range t.Columns {
			if c.References != nil && position[c.References.Table] > i {
				later = append(later, ForeignKey{
					Name:       constraintName(t.Name, c.Name),
					Table:      t.Name,
					Column:     c.Name,
					References: *c.References,
				})
				c.References = nil
			}
			inline.Columns[j] = c
		}
		creates = append(creates, Migration{Kind: CreateTable, Table: inline})
		if len(later) > 0 {
			deferred = append(deferred, Migration{Kind: AddForeignKeys, Table: t, ForeignKeys: later})
		}
	}

	all := append(creates, deferred...)
	base := createdAt.UTC().Truncate(time.Second)
	for i := range all {
		all[i].Timestamp = base.Add(time.Duration(i) * time.Second).Format(TimestampFormat)
	}
	return all
}
