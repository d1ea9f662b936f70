package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
)

func blogPlan(commentFirst bool) plan.Plan {
	f := &schema.Factory{
		IDs:   schema.NewSequence("m"),
		Clock: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	post := f.EmptyModel()
	post.Name = "Post"
	post.Comment = "blog posts"
	post.Fields = []schema.Field{
		f.Field(schema.Named("title"), schema.AsRequired(), schema.AsUnique()),
		f.Field(schema.Named("status"), schema.OfType(schema.EnumDataType("draft", "live"))),
	}
	idx := f.EmptyIndex()
	idx.Fields = []schema.IndexField{{Name: "title", Order: schema.Desc}}
	post.Indexes = []schema.Index{idx}

	comment := f.EmptyModel()
	comment.Name = "Comment"
	comment.Associations = []schema.Association{f.Association(comment.ID, post.ID)}

	s := f.EmptySchema()
	s.Name = "Blog"
	s.Models = []schema.Model{post, comment}
	if commentFirst {
		s.Models = []schema.Model{comment, post}
	}
	return plan.Build(s, database.DefaultDbOptions)
}

func TestGenerateSQLPostgres(t *testing.T) {
	stmts, err := GenerateSQL(blogPlan(false).Migrations, database.Postgres)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CREATE TABLE \"posts\" (\n" +
			"  \"id\" SERIAL PRIMARY KEY,\n" +
			"  \"title\" VARCHAR(255) NOT NULL UNIQUE,\n" +
			"  \"status\" VARCHAR(5) CHECK (\"status\" IN ('draft', 'live'))\n" +
			");",
		`COMMENT ON TABLE "posts" IS 'blog posts';`,
		`CREATE INDEX "posts_title" ON "posts" ("title" DESC);`,
		"CREATE TABLE \"comments\" (\n" +
			"  \"id\" SERIAL PRIMARY KEY,\n" +
			"  \"postId\" INTEGER,\n" +
			"  CONSTRAINT \"fk_comments_postId\" FOREIGN KEY (\"postId\") REFERENCES \"posts\" (\"id\") ON DELETE SET NULL ON UPDATE CASCADE\n" +
			");",
	}, stmts)
}

func TestForwardReferenceUsesAlterTable(t *testing.T) {
	p := blogPlan(true)

	up, err := GenerateSQL(p.Migrations, database.MySQL)
	require.NoError(t, err)
	require.Len(t, up, 4)
	assert.NotContains(t, up[0], "FOREIGN KEY")
	assert.Equal(t,
		"ALTER TABLE `comments` ADD CONSTRAINT `fk_comments_postId` FOREIGN KEY (`postId`) REFERENCES `posts` (`id`) ON DELETE SET NULL ON UPDATE CASCADE;",
		up[3])

	down, err := GenerateRollbackSQL(p.Migrations, database.MySQL)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ALTER TABLE `comments` DROP FOREIGN KEY `fk_comments_postId`;",
		"DROP TABLE IF EXISTS `posts`;",
		"DROP TABLE IF EXISTS `comments`;",
	}, down)
}

func TestSQLiteFoldsDeferredForeignKeys(t *testing.T) {
	p := blogPlan(true)

	up, err := GenerateSQL(p.Migrations, database.SQLite)
	require.NoError(t, err)
	require.Len(t, up, 3)
	assert.Contains(t, up[0], `"id" INTEGER PRIMARY KEY AUTOINCREMENT`)
	assert.Contains(t, up[0], `REFERENCES "posts" ("id")`)

	down, err := GenerateRollbackSQL(p.Migrations, database.SQLite)
	require.NoError(t, err)
	assert.Len(t, down, 2)
}

func TestColumnTypes(t *testing.T) {
	length := 40
	tests := []struct {
		dt   schema.DataType
		d    database.SQLDialect
		want string
	}{
		{schema.DataType{Type: schema.TypeString, Length: &length}, database.Postgres, "VARCHAR(40)"},
		{schema.StringDataType(), database.MSSQL, "NVARCHAR(255)"},
		{schema.DataType{Type: schema.TypeString, Binary: true}, database.MySQL, "VARBINARY(255)"},
		{schema.CiTextDataType(), database.Postgres, "CITEXT"},
		{schema.CiTextDataType(), database.MySQL, "TEXT"},
		{schema.DataType{Type: schema.TypeBigInt, AutoIncrement: true}, database.Postgres, "BIGSERIAL"},
		{schema.DataType{Type: schema.TypeInteger, Unsigned: true, AutoIncrement: true}, database.MariaDB, "INTEGER UNSIGNED AUTO_INCREMENT"},
		{schema.DataType{Type: schema.TypeInteger, AutoIncrement: true}, database.MSSQL, "INT IDENTITY(1,1)"},
		{schema.DecimalDataType(10, 2), database.SQLite, "DECIMAL(10, 2)"},
		{schema.DoubleDataType(), database.MySQL, "DOUBLE"},
		{schema.DateTimeDataType(), database.Postgres, "TIMESTAMP WITH TIME ZONE"},
		{schema.BooleanDataType(), database.MSSQL, "BIT"},
		{schema.EnumDataType("a", "bb"), database.MySQL, "ENUM('a', 'bb')"},
		{schema.ArrayDataType(schema.IntegerDataType()), database.Postgres, "INTEGER[]"},
		{schema.ArrayDataType(schema.IntegerDataType()), database.MySQL, "JSON"},
		{schema.JSONBDataType(), database.Postgres, "JSONB"},
		{schema.JSONBDataType(), database.SQLite, "TEXT"},
		{schema.JSONDataType(), database.MSSQL, "NVARCHAR(MAX)"},
		{schema.BlobDataType(), database.Postgres, "BYTEA"},
		{schema.UUIDDataType(schema.UUIDv4), database.MSSQL, "UNIQUEIDENTIFIER"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColumnType(tt.dt, tt.d), "%s on %s", tt.dt.Type, tt.d)
	}
}

func TestDefaults(t *testing.T) {
	dt := schema.DateTimeDataType()
	dt.DefaultNow = true
	assert.Equal(t, "CURRENT_TIMESTAMP", defaultValue(dt, database.Postgres))
	assert.Equal(t, "gen_random_uuid()", defaultValue(schema.UUIDDataType(schema.UUIDv4), database.Postgres))
	assert.Equal(t, "uuid_generate_v1()", defaultValue(schema.UUIDDataType(schema.UUIDv1), database.Postgres))
	assert.Equal(t, "", defaultValue(schema.DataType{Type: schema.TypeUUID}, database.Postgres))
}

func TestScript(t *testing.T) {
	script, err := Script(blogPlan(false), database.Postgres)
	require.NoError(t, err)
	assert.Contains(t, script, "-- Schema: Blog\n-- Dialect: PostgreSQL\n")
	assert.Contains(t, script, "-- Down Migration (Rollback)\n-- =======================\nDROP TABLE IF EXISTS \"comments\";\nDROP TABLE IF EXISTS \"posts\";\n")
}

func TestUnsupportedMigration(t *testing.T) {
	_, err := GenerateSQL([]plan.Migration{{Kind: "RENAME"}}, database.Postgres)
	assert.EqualError(t, err, "unsupported migration: RENAME")
}
