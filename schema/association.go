package schema

// AssociationTypeType identifies the relationship kind.
type AssociationTypeType string

const (
	BelongsTo     AssociationTypeType = "BELONGS_TO"
	HasOne        AssociationTypeType = "HAS_ONE"
	HasMany       AssociationTypeType = "HAS_MANY"
	BelongsToMany AssociationTypeType = "BELONGS_TO_MANY"
)

// ThroughType selects how a many-to-many association is stored.
type ThroughType string

const (
	// ThroughTable stores pairs in a join table that has no model.
	ThroughTable ThroughType = "THROUGH_TABLE"
	// ThroughModel stores pairs in the table of an existing model.
	ThroughModel ThroughType = "THROUGH_MODEL"
)

// Through overrides the default join table of a BelongsToMany.
type Through struct {
	Type    ThroughType `json:"type" yaml:"type"`
	Table   string      `json:"table,omitempty" yaml:"table,omitempty"`
	ModelID string      `json:"modelId,omitempty" yaml:"model_id,omitempty"`
}

// AssociationType is the typed part of an association. Through and
// TargetFK only apply to BelongsToMany.
type AssociationType struct {
	Type     AssociationTypeType `json:"type" yaml:"type"`
	Through  *Through            `json:"through,omitempty" yaml:"through,omitempty"`
	TargetFK *string             `json:"targetFk,omitempty" yaml:"target_fk,omitempty"`
}

// Association is a typed relationship between two models of one schema.
type Association struct {
	ID            string          `json:"id" yaml:"id"`
	SourceModelID string          `json:"sourceModelId" yaml:"source_model_id"`
	TargetModelID string          `json:"targetModelId" yaml:"target_model_id"`
	Type          AssociationType `json:"type" yaml:"type"`
	ForeignKey    *string         `json:"foreignKey" yaml:"foreign_key"`
	Alias         *string         `json:"alias" yaml:"alias"`
}

// IsSelfReferential reports whether source and target are the same model.
func (a Association) IsSelfReferential() bool {
	return a.SourceModelID == a.TargetModelID
}

// IsMany reports whether the association's accessor yields a collection.
func (a Association) IsMany() bool {
	return a.Type.Type == HasMany || a.Type.Type == BelongsToMany
}

// AliasOrEmpty returns the alias or "" when unset.
func (a Association) AliasOrEmpty() string {
	if a.Alias == nil {
		return ""
	}
	return *a.Alias
}

// ForeignKeyOrEmpty returns the foreign key override or "" when unset.
func (a Association) ForeignKeyOrEmpty() string {
	if a.ForeignKey == nil {
		return ""
	}
	return *a.ForeignKey
}

// DisplayName renders the association kind for humans.
func (t AssociationTypeType) DisplayName() string {
	switch t {
	case BelongsTo:
		return "belongs to"
	case HasOne:
		return "has one"
	case HasMany:
		return "has many"
	case BelongsToMany:
		return "belongs to many"
	}
	return string(t)
}
