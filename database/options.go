// Package database holds the database-facing generation options shared by
// the naming rules, the planner and every framework backend.
package database

import (
	"fmt"
	"strings"
)

// SQLDialect is the target database engine of a generated project.
type SQLDialect string

const (
	Postgres SQLDialect = "postgres"
	MySQL    SQLDialect = "mysql"
	MariaDB  SQLDialect = "mariadb"
	SQLite   SQLDialect = "sqlite"
	MSSQL    SQLDialect = "mssql"
)

// CaseStyle controls identifier casing for tables, columns and files.
type CaseStyle string

const (
	Camel  CaseStyle = "camel"
	Snake  CaseStyle = "snake"
	Pascal CaseStyle = "pascal"
)

// NounForm controls whether table names are singular or plural.
type NounForm string

const (
	Singular NounForm = "singular"
	Plural   NounForm = "plural"
)

// CaseStyles and NounForms list every naming option.
var (
	CaseStyles = []CaseStyle{Camel, Snake, Pascal}
	NounForms  = []NounForm{Singular, Plural}
)

// DbOptions is an immutable value passed into generation.
type DbOptions struct {
	SQLDialect SQLDialect `json:"sqlDialect" yaml:"sql_dialect"`
	CaseStyle  CaseStyle  `json:"caseStyle" yaml:"case_style"`
	NounForm   NounForm   `json:"nounForm" yaml:"noun_form"`

	// Timestamp column names before casing is applied.
	CreatedAtColumn string `json:"createdAtColumn" yaml:"created_at_column"`
	UpdatedAtColumn string `json:"updatedAtColumn" yaml:"updated_at_column"`
	DeletedAtColumn string `json:"deletedAtColumn" yaml:"deleted_at_column"`
}

// DefaultDbOptions is the configuration used when nothing else is given.
var DefaultDbOptions = DbOptions{
	SQLDialect:      Postgres,
	CaseStyle:       Camel,
	NounForm:        Plural,
	CreatedAtColumn: "createdAt",
	UpdatedAtColumn: "updatedAt",
	DeletedAtColumn: "deletedAt",
}

// Dialects lists every supported dialect in display order.
var Dialects = []SQLDialect{Postgres, MySQL, MariaDB, SQLite, MSSQL}

// DisplayName returns the human readable dialect name.
func (d SQLDialect) DisplayName() string {
	switch d {
	case Postgres:
		return "PostgreSQL"
	case MySQL:
		return "MySQL"
	case MariaDB:
		return "MariaDB"
	case SQLite:
		return "SQLite"
	case MSSQL:
		return "Microsoft SQL Server"
	default:
		return string(d)
	}
}

// ParseSQLDialect accepts a dialect name in any case, plus a few aliases.
func ParseSQLDialect(s string) (SQLDialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "mariadb":
		return MariaDB, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mssql", "sqlserver":
		return MSSQL, nil
	}
	return "", fmt.Errorf("unknown sql dialect %q", s)
}

// ParseCaseStyle accepts camel, snake or pascal in any case.
func ParseCaseStyle(s string) (CaseStyle, error) {
	switch CaseStyle(strings.ToLower(strings.TrimSpace(s))) {
	case Camel:
		return Camel, nil
	case Snake:
		return Snake, nil
	case Pascal:
		return Pascal, nil
	}
	return "", fmt.Errorf("unknown case style %q", s)
}

// ParseNounForm accepts singular or plural in any case.
func ParseNounForm(s string) (NounForm, error) {
	switch NounForm(strings.ToLower(strings.TrimSpace(s))) {
	case Singular:
		return Singular, nil
	case Plural:
		return Plural, nil
	}
	return "", fmt.Errorf("unknown noun form %q", s)
}

// WithDefaults fills empty fields from DefaultDbOptions.
func (o DbOptions) WithDefaults() DbOptions {
	if o.SQLDialect == "" {
		o.SQLDialect = DefaultDbOptions.SQLDialect
	}
	if o.CaseStyle == "" {
		o.CaseStyle = DefaultDbOptions.CaseStyle
	}
	if o.NounForm == "" {
		o.NounForm = DefaultDbOptions.NounForm
	}
	if o.CreatedAtColumn == "" {
		o.CreatedAtColumn = DefaultDbOptions.CreatedAtColumn
	}
	if o.UpdatedAtColumn == "" {
		o.UpdatedAtColumn = DefaultDbOptions.UpdatedAtColumn
	}
	if o.DeletedAtColumn == "" {
		o.DeletedAtColumn = DefaultDbOptions.DeletedAtColumn
	}
	return o
}
