package loader

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/modelgen/naming"
	"github.com/ridoystarlord/modelgen/schema"
)

// yamlFile is the authoring format of a schema. Models refer to each
// other by name; ids are assigned while loading.
type yamlFile struct {
	Name      string      `yaml:"name"`
	CreatedAt *time.Time  `yaml:"created_at,omitempty"`
	Models    []yamlModel `yaml:"models"`
}

type yamlModel struct {
	Name         string            `yaml:"name"`
	Comment      string            `yaml:"comment,omitempty"`
	Timestamps   *bool             `yaml:"timestamps,omitempty"`
	Paranoid     bool              `yaml:"paranoid,omitempty"`
	Fields       []yamlField       `yaml:"fields,omitempty"`
	Associations []yamlAssociation `yaml:"associations,omitempty"`
	Indexes      []yamlIndex       `yaml:"indexes,omitempty"`
}

type yamlField struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type,omitempty"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
	Required   bool   `yaml:"required,omitempty"`
	Unique     bool   `yaml:"unique,omitempty"`
	Comment    string `yaml:"comment,omitempty"`
}

type yamlAssociation struct {
	Type             string `yaml:"type,omitempty"`
	Target           string `yaml:"target"`
	Alias            string `yaml:"alias,omitempty"`
	ForeignKey       string `yaml:"foreign_key,omitempty"`
	ThroughTable     string `yaml:"through_table,omitempty"`
	ThroughModel     string `yaml:"through_model,omitempty"`
	TargetForeignKey string `yaml:"target_foreign_key,omitempty"`
}

type yamlIndex struct {
	Name   string           `yaml:"name,omitempty"`
	Unique bool             `yaml:"unique,omitempty"`
	Using  string           `yaml:"using,omitempty"`
	Prefix string           `yaml:"prefix,omitempty"`
	Fields []yamlIndexField `yaml:"fields"`
}

// yamlIndexField is either a bare field name or a mapping.
type yamlIndexField struct {
	Name     string `yaml:"name"`
	Length   *int   `yaml:"length,omitempty"`
	Order    string `yaml:"order,omitempty"`
	Collate  string `yaml:"collate,omitempty"`
	Operator string `yaml:"operator,omitempty"`
}

func (f *yamlIndexField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Name = node.Value
		return nil
	}
	type plain yamlIndexField
	return node.Decode((*plain)(f))
}

func (f yamlIndexField) MarshalYAML() (interface{}, error) {
	if f.Length == nil && f.Order == "" && f.Collate == "" && f.Operator == "" {
		return f.Name, nil
	}
	type plain yamlIndexField
	return plain(f), nil
}

var associationTypes = map[string]schema.AssociationTypeType{
	"belongsto":     schema.BelongsTo,
	"hasone":        schema.HasOne,
	"hasmany":       schema.HasMany,
	"belongstomany": schema.BelongsToMany,
}

// DecodeYAML builds a schema from the YAML authoring format. Ids and
// missing timestamps come from f.
func DecodeYAML(data []byte, f *schema.Factory) (schema.Schema, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return schema.Schema{}, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	s := f.EmptySchema()
	s.Name = yf.Name
	if yf.CreatedAt != nil {
		s.CreatedAt = yf.CreatedAt.UTC()
		s.UpdatedAt = s.CreatedAt
	}

	// Ids first, so associations can point at any model.
	models := make([]schema.Model, len(yf.Models))
	for i, ym := range yf.Models {
		m := f.EmptyModel()
		m.Name = ym.Name
		m.Comment = ym.Comment
		m.Timestamps = ym.Timestamps == nil || *ym.Timestamps
		m.Paranoid = ym.Paranoid
		m.CreatedAt, m.UpdatedAt = s.CreatedAt, s.CreatedAt
		models[i] = m
	}
	lookup := func(name string) (string, bool) {
		for _, m := range models {
			if m.Name == name {
				return m.ID, true
			}
		}
		key := naming.Normalize(name)
		for _, m := range models {
			if key != "" && naming.Normalize(m.Name) == key {
				return m.ID, true
			}
		}
		return "", false
	}

	for i, ym := range yf.Models {
		m := &models[i]
		for _, yfd := range ym.Fields {
			field, err := decodeField(f, yfd)
			if err != nil {
				return schema.Schema{}, fmt.Errorf("model %q: field %q: %w", ym.Name, yfd.Name, err)
			}
			m.Fields = append(m.Fields, field)
		}
		for j, ya := range ym.Associations {
			a, err := decodeAssociation(f, m.ID, ya, lookup)
			if err != nil {
				return schema.Schema{}, fmt.Errorf("model %q: association %d: %w", ym.Name, j+1, err)
			}
			m.Associations = append(m.Associations, a)
		}
		for j, yi := range ym.Indexes {
			idx, err := decodeIndex(f, yi)
			if err != nil {
				return schema.Schema{}, fmt.Errorf("model %q: index %d: %w", ym.Name, j+1, err)
			}
			m.Indexes = append(m.Indexes, idx)
		}
	}
	s.Models = models
	return s, nil
}

func decodeField(f *schema.Factory, yfd yamlField) (schema.Field, error) {
	field := f.Field(schema.Named(yfd.Name), schema.WithFieldComment(yfd.Comment))
	if yfd.Type != "" {
		dt, err := ParseDataType(yfd.Type)
		if err != nil {
			return schema.Field{}, err
		}
		field.Type = dt
	}
	field.PrimaryKey = yfd.PrimaryKey
	field.Required = yfd.Required
	field.Unique = yfd.Unique
	return field, nil
}

func decodeAssociation(f *schema.Factory, sourceID string, ya yamlAssociation, lookup func(string) (string, bool)) (schema.Association, error) {
	targetID, ok := lookup(ya.Target)
	if !ok {
		return schema.Association{}, fmt.Errorf("unknown target model %q", ya.Target)
	}

	t := schema.BelongsTo
	if ya.Type != "" {
		if t, ok = associationTypes[naming.Normalize(ya.Type)]; !ok {
			return schema.Association{}, fmt.Errorf("unknown association type %q", ya.Type)
		}
	}
	if t != schema.BelongsToMany && (ya.ThroughTable != "" || ya.ThroughModel != "" || ya.TargetForeignKey != "") {
		return schema.Association{}, fmt.Errorf("through and target_foreign_key need a belongs_to_many association")
	}

	opts := []schema.AssociationOption{schema.WithType(t)}
	if ya.Alias != "" {
		opts = append(opts, schema.WithAlias(ya.Alias))
	}
	if ya.ForeignKey != "" {
		opts = append(opts, schema.WithForeignKey(ya.ForeignKey))
	}
	switch {
	case ya.ThroughTable != "" && ya.ThroughModel != "":
		return schema.Association{}, fmt.Errorf("through_table and through_model are exclusive")
	case ya.ThroughTable != "":
		opts = append(opts, schema.WithThroughTable(ya.ThroughTable))
	case ya.ThroughModel != "":
		throughID, ok := lookup(ya.ThroughModel)
		if !ok {
			return schema.Association{}, fmt.Errorf("unknown through model %q", ya.ThroughModel)
		}
		opts = append(opts, schema.WithThroughModel(throughID))
	}
	if ya.TargetForeignKey != "" {
		opts = append(opts, schema.WithTargetForeignKey(ya.TargetForeignKey))
	}

	return f.Association(sourceID, targetID, opts...), nil
}

func decodeIndex(f *schema.Factory, yi yamlIndex) (schema.Index, error) {
	idx := f.EmptyIndex()
	idx.Name = yi.Name
	idx.Unique = yi.Unique
	idx.Prefix = yi.Prefix
	switch strings.ToUpper(yi.Using) {
	case "", string(schema.BTree):
	case string(schema.Hash):
		idx.Using = schema.Hash
	default:
		return schema.Index{}, fmt.Errorf("unknown index method %q", yi.Using)
	}
	for _, yf := range yi.Fields {
		field := schema.IndexField{
			Name:     yf.Name,
			Length:   yf.Length,
			Collate:  yf.Collate,
			Operator: yf.Operator,
		}
		switch strings.ToUpper(yf.Order) {
		case "":
		case string(schema.Asc):
			field.Order = schema.Asc
		case string(schema.Desc):
			field.Order = schema.Desc
		default:
			return schema.Index{}, fmt.Errorf("unknown sort order %q", yf.Order)
		}
		idx.Fields = append(idx.Fields, field)
	}
	return idx, nil
}

// EncodeYAML renders s in the YAML authoring format read by DecodeYAML.
func EncodeYAML(s schema.Schema) ([]byte, error) {
	created := s.CreatedAt.UTC()
	yf := yamlFile{Name: s.Name, CreatedAt: &created}
	for _, m := range s.Models {
		timestamps := m.Timestamps
		ym := yamlModel{
			Name:       m.Name,
			Comment:    m.Comment,
			Timestamps: &timestamps,
			Paranoid:   m.Paranoid,
		}
		for _, fd := range m.Fields {
			ym.Fields = append(ym.Fields, yamlField{
				Name:       fd.Name,
				Type:       FormatDataType(fd.Type),
				PrimaryKey: fd.PrimaryKey,
				Required:   fd.Required,
				Unique:     fd.Unique,
				Comment:    fd.Comment,
			})
		}
		for _, a := range m.Associations {
			ya, err := encodeAssociation(a, s)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", m.Name, err)
			}
			ym.Associations = append(ym.Associations, ya)
		}
		for _, idx := range m.Indexes {
			yi := yamlIndex{Name: idx.Name, Unique: idx.Unique, Prefix: idx.Prefix}
			if idx.Using == schema.Hash {
				yi.Using = strings.ToLower(string(idx.Using))
			}
			for _, fd := range idx.Fields {
				yi.Fields = append(yi.Fields, yamlIndexField{
					Name:     fd.Name,
					Length:   fd.Length,
					Order:    strings.ToLower(string(fd.Order)),
					Collate:  fd.Collate,
					Operator: fd.Operator,
				})
			}
			ym.Indexes = append(ym.Indexes, yi)
		}
		yf.Models = append(yf.Models, ym)
	}

	out, err := yaml.Marshal(yf)
	if err != nil {
		return nil, fmt.Errorf("marshalling YAML: %w", err)
	}
	return out, nil
}

func encodeAssociation(a schema.Association, s schema.Schema) (yamlAssociation, error) {
	name := func(id string) (string, error) {
		m, ok := s.FindModel(id)
		if !ok {
			return "", fmt.Errorf("association %s: model %q does not exist", a.ID, id)
		}
		return m.Name, nil
	}
	target, err := name(a.TargetModelID)
	if err != nil {
		return yamlAssociation{}, err
	}
	ya := yamlAssociation{
		Type:       strings.ToLower(string(a.Type.Type)),
		Target:     target,
		Alias:      a.AliasOrEmpty(),
		ForeignKey: a.ForeignKeyOrEmpty(),
	}
	if a.Type.TargetFK != nil {
		ya.TargetForeignKey = *a.Type.TargetFK
	}
	if t := a.Type.Through; t != nil {
		switch t.Type {
		case schema.ThroughTable:
			ya.ThroughTable = t.Table
		case schema.ThroughModel:
			if ya.ThroughModel, err = name(t.ModelID); err != nil {
				return yamlAssociation{}, err
			}
		}
	}
	return ya, nil
}
