// Package schema defines the abstract relational data model: a schema is a
// named collection of models, each with fields, associations and indexes.
package schema

import "time"

// Schema is one named design.
type Schema struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Models     []Model   `json:"models" yaml:"models"`
	ForkedFrom *string   `json:"forkedFrom" yaml:"forked_from"`
	CreatedAt  time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updated_at"`
}

// Model is a single entity type, analogous to a database table.
type Model struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Fields       []Field       `json:"fields" yaml:"fields"`
	Associations []Association `json:"associations" yaml:"associations"`
	Indexes      []Index       `json:"indexes" yaml:"indexes"`
	Timestamps   bool          `json:"timestamps" yaml:"timestamps"`
	// Paranoid models are soft deleted and require Timestamps.
	Paranoid  bool      `json:"paranoid" yaml:"paranoid"`
	Comment   string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// Field is one column-equivalent attribute of a model.
type Field struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Type       DataType `json:"type" yaml:"type"`
	PrimaryKey bool     `json:"primaryKey" yaml:"primary_key"`
	Required   bool     `json:"required" yaml:"required"`
	Unique     bool     `json:"unique" yaml:"unique"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// IsNewSchema reports whether the schema has never been saved.
func IsNewSchema(s Schema) bool {
	return s.ID == ""
}

// FindModel returns the model with the given id.
func (s Schema) FindModel(id string) (Model, bool) {
	for _, m := range s.Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// ModelIndex returns the position of the model in s.Models, or -1.
func (s Schema) ModelIndex(id string) int {
	for i, m := range s.Models {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// FindField returns the field with the given name, compared exactly.
func (m Model) FindField(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// PrimaryKeys returns the fields marked as primary key, in declaration order.
func (m Model) PrimaryKeys() []Field {
	var pks []Field
	for _, f := range m.Fields {
		if f.PrimaryKey {
			pks = append(pks, f)
		}
	}
	return pks
}
