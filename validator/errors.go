package validator

// Validation problems are returned as trees that mirror the shape of the
// validated entity. Each leaf holds at most one message; an empty string
// means the attribute is valid. Child maps are keyed by entity id and only
// contain children that have at least one problem.

// SchemaErrors are the problems of a schema and its models.
type SchemaErrors struct {
	Name   string                 `json:"name,omitempty"`
	Models map[string]ModelErrors `json:"models,omitempty"`
}

// ModelErrors are the problems of one model.
type ModelErrors struct {
	Name         string                       `json:"name,omitempty"`
	Fields       map[string]FieldErrors       `json:"fields,omitempty"`
	Associations map[string]AssociationErrors `json:"associations,omitempty"`
	Indexes      map[string]IndexErrors       `json:"indexes,omitempty"`
	Paranoid     string                       `json:"paranoid,omitempty"`
}

type FieldErrors struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

type AssociationErrors struct {
	Source     string `json:"source,omitempty"`
	Target     string `json:"target,omitempty"`
	Alias      string `json:"alias,omitempty"`
	Through    string `json:"through,omitempty"`
	ForeignKey string `json:"foreignKey,omitempty"`
}

type IndexErrors struct {
	Name   string `json:"name,omitempty"`
	Fields string `json:"fields,omitempty"`
}

var (
	EmptySchemaErrors = SchemaErrors{}
	EmptyModelErrors  = ModelErrors{}
)

func (e FieldErrors) Empty() bool { return e == FieldErrors{} }
func (e AssociationErrors) Empty() bool { return e == AssociationErrors{} }
func (e IndexErrors) Empty() bool { return e == IndexErrors{} }

// Empty reports whether every leaf of the model tree is empty.
func (e ModelErrors) Empty() bool {
	if e.Name != "" || e.Paranoid != "" {
		return false
	}
	for _, f := range e.Fields {
		if !f.Empty() {
			return false
		}
	}
	for _, a := range e.Associations {
		if !a.Empty() {
			return false
		}
	}
	for _, i := range e.Indexes {
		if !i.Empty() {
			return false
		}
	}
	return true
}

// Empty reports whether every leaf of the schema tree is empty.
func (e SchemaErrors) Empty() bool {
	if e.Name != "" {
		return false
	}
	for _, m := range e.Models {
		if !m.Empty() {
			return false
		}
	}
	return true
}

func HasSchemaErrors(e SchemaErrors) bool { return !e.Empty() }
func NoSchemaErrors(e SchemaErrors) bool { return e.Empty() }
func HasModelErrors(e ModelErrors) bool { return !e.Empty() }
func NoModelErrors(e ModelErrors) bool { return e.Empty() }
