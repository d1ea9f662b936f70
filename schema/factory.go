package schema

import "time"

// Factory builds fresh entities with generated ids and timestamps. The id
// generator and clock are explicit so callers control determinism.
type Factory struct {
	IDs   IDGenerator
	Clock func() time.Time
}

// NewFactory returns a factory backed by ULIDs and the wall clock.
func NewFactory() *Factory {
	return &Factory{IDs: NewULIDGenerator(), Clock: time.Now}
}

func (f *Factory) now() time.Time {
	if f.Clock == nil {
		return time.Now().UTC()
	}
	return f.Clock().UTC()
}

func (f *Factory) id() string {
	if f.IDs == nil {
		return UUIDGenerator{}.NewID()
	}
	return f.IDs.NewID()
}

// EmptySchema returns an unsaved schema: its id is empty.
func (f *Factory) EmptySchema() Schema {
	t := f.now()
	return Schema{
		ID:        "",
		Name:      "",
		Models:    []Model{},
		CreatedAt: t,
		UpdatedAt: t,
	}
}

func (f *Factory) EmptyModel() Model {
	t := f.now()
	return Model{
		ID:           f.id(),
		Fields:       []Field{},
		Associations: []Association{},
		Indexes:      []Index{},
		CreatedAt:    t,
		UpdatedAt:    t,
	}
}

func (f *Factory) EmptyField() Field {
	return Field{
		ID:   f.id(),
		Type: StringDataType(),
	}
}

func (f *Factory) EmptyIndex() Index {
	return Index{
		ID:     f.id(),
		Fields: []IndexField{},
		Using:  BTree,
	}
}

func (f *Factory) EmptyAssociation(sourceModelID, targetModelID string) Association {
	return Association{
		ID:            f.id(),
		SourceModelID: sourceModelID,
		TargetModelID: targetModelID,
		Type:          AssociationType{Type: BelongsTo},
	}
}

// FieldOption overrides a default of a new field.
type FieldOption func(*Field)

// Field returns a new field with opts applied over the EmptyField defaults.
func (f *Factory) Field(opts ...FieldOption) Field {
	fd := f.EmptyField()
	for _, opt := range opts {
		opt(&fd)
	}
	return fd
}

func Named(name string) FieldOption { return func(f *Field) { f.Name = name } }
func OfType(dt DataType) FieldOption { return func(f *Field) { f.Type = dt } }
func AsPrimaryKey() FieldOption { return func(f *Field) { f.PrimaryKey = true } }
func AsRequired() FieldOption { return func(f *Field) { f.Required = true } }
func AsUnique() FieldOption { return func(f *Field) { f.Unique = true } }
func WithFieldComment(c string) FieldOption { return func(f *Field) { f.Comment = c } }

// AssociationOption overrides a default of a new association.
type AssociationOption func(*Association)

// Association returns a new association with opts applied over the
// EmptyAssociation defaults.
func (f *Factory) Association(sourceModelID, targetModelID string, opts ...AssociationOption) Association {
	a := f.EmptyAssociation(sourceModelID, targetModelID)
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func WithType(t AssociationTypeType) AssociationOption {
	return func(a *Association) { a.Type.Type = t }
}

func WithForeignKey(fk string) AssociationOption {
	return func(a *Association) { a.ForeignKey = &fk }
}

func WithAlias(alias string) AssociationOption {
	return func(a *Association) { a.Alias = &alias }
}

// WithThroughTable makes a BelongsToMany use the named join table.
func WithThroughTable(table string) AssociationOption {
	return func(a *Association) {
		a.Type.Type = BelongsToMany
		a.Type.Through = &Through{Type: ThroughTable, Table: table}
	}
}

// WithThroughModel makes a BelongsToMany go through an existing model.
func WithThroughModel(modelID string) AssociationOption {
	return func(a *Association) {
		a.Type.Type = BelongsToMany
		a.Type.Through = &Through{Type: ThroughModel, ModelID: modelID}
	}
}

func WithTargetForeignKey(fk string) AssociationOption {
	return func(a *Association) { a.Type.TargetFK = &fk }
}
