package schema

// IndexMethod is the USING clause of an index.
type IndexMethod string

const (
	BTree IndexMethod = "BTREE"
	Hash  IndexMethod = "HASH"
)

// SortOrder is the direction of an indexed column.
type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// IndexField names one indexed field of the owning model.
type IndexField struct {
	Name string `json:"name" yaml:"name"`
	// Length creates a prefix index of that many characters.
	Length   *int      `json:"length,omitempty" yaml:"length,omitempty"`
	Order    SortOrder `json:"order,omitempty" yaml:"order,omitempty"`
	Collate  string    `json:"collate,omitempty" yaml:"collate,omitempty"`
	Operator string    `json:"operator,omitempty" yaml:"operator,omitempty"`
}

// Index is a table-level index declaration.
type Index struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Fields []IndexField `json:"fields" yaml:"fields"`
	Unique bool         `json:"unique" yaml:"unique"`
	Using  IndexMethod  `json:"using" yaml:"using"`
	// Prefix is prepended to the index name.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// FieldNames returns the names of the indexed fields in order.
func (i Index) FieldNames() []string {
	names := make([]string, 0, len(i.Fields))
	for _, f := range i.Fields {
		names = append(names, f.Name)
	}
	return names
}
