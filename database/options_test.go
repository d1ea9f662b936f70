package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSQLDialect(t *testing.T) {
	tests := map[string]SQLDialect{
		"postgres":   Postgres,
		"PostgreSQL": Postgres,
		" pg ":       Postgres,
		"MySQL":      MySQL,
		"mariadb":    MariaDB,
		"sqlite3":    SQLite,
		"sqlserver":  MSSQL,
	}
	for in, want := range tests {
		got, err := ParseSQLDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSQLDialect("oracle")
	assert.EqualError(t, err, `unknown sql dialect "oracle"`)
}

func TestParseCaseStyleAndNounForm(t *testing.T) {
	cs, err := ParseCaseStyle("Snake")
	require.NoError(t, err)
	assert.Equal(t, Snake, cs)
	_, err = ParseCaseStyle("kebab")
	assert.Error(t, err)

	nf, err := ParseNounForm("SINGULAR")
	require.NoError(t, err)
	assert.Equal(t, Singular, nf)
	_, err = ParseNounForm("")
	assert.Error(t, err)
}

func TestWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultDbOptions, DbOptions{}.WithDefaults())

	opts := DbOptions{SQLDialect: SQLite, CreatedAtColumn: "created"}.WithDefaults()
	assert.Equal(t, SQLite, opts.SQLDialect)
	assert.Equal(t, "created", opts.CreatedAtColumn)
	assert.Equal(t, Camel, opts.CaseStyle)
	assert.Equal(t, "updatedAt", opts.UpdatedAtColumn)
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		d    SQLDialect
		name string
		want string
	}{
		{Postgres, "posts", `"posts"`},
		{Postgres, `odd"name`, `"odd""name"`},
		{SQLite, "post_tags", `"post_tags"`},
		{MySQL, "posts", "`posts`"},
		{MariaDB, "we`ird", "`we``ird`"},
		{MSSQL, "posts", "[posts]"},
		{MSSQL, "a]b", "[a]]b]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuoteIdentifier(tt.d, tt.name), "%s %s", tt.d, tt.name)
	}
	assert.Equal(t, "'it''s'", QuoteString("it's"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "PostgreSQL", Postgres.DisplayName())
	assert.Equal(t, "Microsoft SQL Server", MSSQL.DisplayName())
	assert.Equal(t, "oracle", SQLDialect("oracle").DisplayName())
}
