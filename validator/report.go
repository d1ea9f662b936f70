package validator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/schema"
)

// ValidationError is one flattened problem, addressed by model, field and
// index name.
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Index    string `json:"index,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

// Report flattens errs into a list ordered like the schema itself, and
// adds advisory warnings and notes that do not block generation.
func Report(s schema.Schema, errs SchemaErrors) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	addError := func(kind, table, column, index, msg string) {
		if msg == "" {
			return
		}
		result.Errors = append(result.Errors, ValidationError{
			Type:     kind,
			Table:    table,
			Column:   column,
			Index:    index,
			Message:  msg,
			Severity: "error",
		})
	}

	addError("schema_name", "", "", "", errs.Name)

	for _, m := range s.Models {
		me := errs.Models[m.ID]
		addError("model_name", m.Name, "", "", me.Name)

		for _, f := range m.Fields {
			fe := me.Fields[f.ID]
			addError("field_name", m.Name, f.Name, "", fe.Name)
			addError("data_type", m.Name, f.Name, "", fe.Type)
		}

		for _, a := range m.Associations {
			ae := me.Associations[a.ID]
			label := associationLabel(a, s)
			addError("association_source", m.Name, label, "", ae.Source)
			addError("association_target", m.Name, label, "", ae.Target)
			addError("association_alias", m.Name, label, "", ae.Alias)
			addError("association_through", m.Name, label, "", ae.Through)
			addError("association_foreign_key", m.Name, label, "", ae.ForeignKey)
		}

		for _, idx := range m.Indexes {
			ie := me.Indexes[idx.ID]
			name := idx.Name
			if name == "" {
				name = strings.Join(idx.FieldNames(), "_")
			}
			addError("index_name", m.Name, "", name, ie.Name)
			addError("index_fields", m.Name, "", name, ie.Fields)
		}

		addError("paranoid", m.Name, "", "", me.Paranoid)

		switch pks := m.PrimaryKeys(); {
		case len(pks) == 0:
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "no_primary_key",
				Table:    m.Name,
				Message:  fmt.Sprintf("Model '%s' has no primary key field; an integer 'id' primary key will be generated", m.Name),
				Severity: "warning",
			})
		case len(pks) > 1:
			names := make([]string, len(pks))
			for i, f := range pks {
				names[i] = f.Name
			}
			result.Info = append(result.Info, ValidationError{
				Type:     "composite_primary_key",
				Table:    m.Name,
				Message:  fmt.Sprintf("Model '%s' has a composite primary key (%s)", m.Name, strings.Join(names, ", ")),
				Severity: "info",
			})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func associationLabel(a schema.Association, s schema.Schema) string {
	if name, ok := AccessorName(a, s); ok {
		return name
	}
	return a.Type.Type.DisplayName()
}
