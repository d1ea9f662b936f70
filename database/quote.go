package database

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// QuoteIdentifier quotes a table, column or index name for the dialect.
func QuoteIdentifier(d SQLDialect, name string) string {
	switch d {
	case MySQL, MariaDB:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	case MSSQL:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default:
		return pgx.Identifier{name}.Sanitize()
	}
}

// QuoteString renders a single-quoted SQL string literal.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
