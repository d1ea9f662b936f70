package sequelize

import (
	"encoding/json"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/framework"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
	"github.com/ridoystarlord/modelgen/validator"
)

var created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newFactory() *schema.Factory {
	return &schema.Factory{
		IDs:   schema.NewSequence("id"),
		Clock: func() time.Time { return created },
	}
}

func blogSchema() schema.Schema {
	f := newFactory()
	post := f.EmptyModel()
	post.Name = "Post"
	post.Fields = []schema.Field{f.Field(schema.Named("title"), schema.AsRequired())}

	comment := f.EmptyModel()
	comment.Name = "Comment"
	comment.Associations = []schema.Association{f.Association(comment.ID, post.ID)}

	s := f.EmptySchema()
	s.Name = "Blog"
	s.Models = []schema.Model{post, comment}
	return s
}

func generate(s schema.Schema, opts database.DbOptions) files.Item {
	return Framework{}.Generate(framework.GenerateArgs{Schema: s, DbOptions: opts})
}

func content(t *testing.T, root files.Item, p string) string {
	t.Helper()
	it, ok := files.Lookup(root, p)
	require.True(t, ok, "missing %s", p)
	f, ok := it.(*files.File)
	require.True(t, ok, "%s is not a file", p)
	return f.Content
}

func TestBlogProject(t *testing.T) {
	root := generate(blogSchema(), database.DefaultDbOptions)

	assert.Equal(t, []string{
		"blog/.gitignore",
		"blog/.sequelizerc",
		"blog/README.md",
		"blog/package.json",
		"blog/config/config.js",
		"blog/migrations/20240102030405-create-posts.js",
		"blog/migrations/20240102030406-create-comments.js",
		"blog/models/index.js",
		"blog/models/post.js",
		"blog/models/comment.js",
	}, files.Paths(root))

	migration := content(t, root, "blog/migrations/20240102030406-create-comments.js")
	assert.Contains(t, migration, "const { QueryInterface, Sequelize } = require('sequelize')\n\nmodule.exports = {\n")
	assert.Contains(t, migration, ""+
		"      postId: {\n"+
		"        type: Sequelize.INTEGER,\n"+
		"        references: {\n"+
		"          model: 'posts',\n"+
		"          key: 'id',\n"+
		"        },\n"+
		"        onDelete: 'SET NULL',\n"+
		"        onUpdate: 'CASCADE',\n"+
		"      },\n")
	assert.Contains(t, migration, ""+
		"  down: async (queryInterface, Sequelize) => {\n"+
		"    await queryInterface.dropTable('comments')\n"+
		"  },\n"+
		"}\n")

	assert.Equal(t, `const { Model } = require('sequelize')

module.exports = (sequelize, DataTypes) => {
  class Comment extends Model {
    /**
     * Called by models/index.js once every model is defined.
     */
    static associate(models) {
      this.belongsTo(models.Post, { as: 'post', foreignKey: 'postId' })
    }
  }
  Comment.init(
    {
      id: {
        type: DataTypes.INTEGER,
        primaryKey: true,
        autoIncrement: true,
        allowNull: false,
      },
      postId: {
        type: DataTypes.INTEGER,
      },
    },
    {
      sequelize,
      modelName: 'Comment',
      tableName: 'comments',
      timestamps: false,
      paranoid: false,
      underscored: false,
    },
  )
  return Comment
}
`, content(t, root, "blog/models/comment.js"))

	post := content(t, root, "blog/models/post.js")
	assert.Contains(t, post, "    static associate(models) {\n    }\n")
	assert.Contains(t, post, "      title: {\n        type: DataTypes.STRING,\n        allowNull: false,\n      },\n")

	readme := content(t, root, "blog/README.md")
	assert.Contains(t, readme, "| Comment | `comments` |")
	assert.Contains(t, readme, "    posts ||--o{ comments : postId\n")

	var pkg map[string]any
	require.NoError(t, json.Unmarshal([]byte(content(t, root, "blog/package.json")), &pkg))
	assert.Equal(t, "blog", pkg["name"])
	assert.Contains(t, pkg["dependencies"], "pg")
	assert.Contains(t, pkg["devDependencies"], "sequelize-cli")

	s := blogSchema()
	m, ok := Framework{}.ModelFromPath("blog/models/comment.js", s)
	require.True(t, ok)
	assert.Equal(t, "Comment", m.Name)
}

func TestSnakeSingularProject(t *testing.T) {
	f := newFactory()
	author := f.EmptyModel()
	author.Name = "BlogAuthor"
	author.Timestamps = true
	author.Paranoid = true
	author.Fields = []schema.Field{
		f.Field(schema.Named("id"), schema.OfType(schema.UUIDDataType(schema.UUIDv4)), schema.AsPrimaryKey()),
		f.Field(schema.Named("displayName"), schema.WithFieldComment("shown on posts")),
	}
	idx := f.EmptyIndex()
	idx.Unique = true
	idx.Fields = []schema.IndexField{{Name: "display name"}}
	author.Indexes = []schema.Index{idx}

	s := f.EmptySchema()
	s.Name = "My Blog"
	s.Models = []schema.Model{author}

	opts := database.DefaultDbOptions
	opts.CaseStyle = database.Snake
	opts.NounForm = database.Singular
	opts.SQLDialect = database.MySQL
	root := generate(s, opts)

	migration := content(t, root, "my-blog/migrations/20240102030405-create-blog_author.js")
	assert.Contains(t, migration, "      id: {\n        type: Sequelize.UUID,\n        primaryKey: true,\n        allowNull: false,\n        defaultValue: Sequelize.UUIDV4,\n      },\n")
	assert.Contains(t, migration, "      display_name: {\n        type: Sequelize.STRING,\n        comment: 'shown on posts',\n      },\n")
	assert.Contains(t, migration, "      deleted_at: {\n        type: Sequelize.DATE,\n      },\n")
	assert.Contains(t, migration, "    await queryInterface.addIndex('blog_author', ['display_name'], { name: 'blog_author_display_name', unique: true })\n")

	model := content(t, root, "my-blog/models/blog_author.js")
	assert.Contains(t, model, "      displayName: {\n        type: DataTypes.STRING,\n        field: 'display_name',\n        comment: 'shown on posts',\n      },\n")
	assert.Contains(t, model, "      underscored: true,\n      createdAt: 'createdAt',\n      updatedAt: 'updatedAt',\n      deletedAt: 'deletedAt',\n")

	assert.Contains(t, content(t, root, "my-blog/package.json"), `"mysql2"`)
	assert.Contains(t, content(t, root, "my-blog/config/config.js"), "    dialect: 'mysql',\n")
}

func TestAssociationsInModels(t *testing.T) {
	f := newFactory()
	post := f.EmptyModel()
	post.Name = "Post"
	tag := f.EmptyModel()
	tag.Name = "Tag"
	user := f.EmptyModel()
	user.Name = "User"
	post.Associations = []schema.Association{
		f.Association(post.ID, tag.ID, schema.WithType(schema.BelongsToMany)),
		f.Association(post.ID, user.ID, schema.WithAlias("author")),
	}
	user.Associations = []schema.Association{
		f.Association(user.ID, post.ID, schema.WithType(schema.HasMany), schema.WithForeignKey("author id")),
	}
	s := f.EmptySchema()
	s.Name = "Blog"
	s.Models = []schema.Model{post, tag, user}

	root := generate(s, database.DefaultDbOptions)
	assert.Contains(t, content(t, root, "blog/models/post.js"),
		"      this.belongsToMany(models.Tag, { as: 'tags', through: 'postTags', foreignKey: 'postId', otherKey: 'tagId' })\n"+
			"      this.belongsTo(models.User, { as: 'author', foreignKey: 'authorId' })\n")
	assert.Contains(t, content(t, root, "blog/models/user.js"),
		"      this.hasMany(models.Post, { as: 'posts', foreignKey: 'authorId' })\n")

	var joinMigration bool
	for _, p := range files.Paths(root) {
		if strings.HasSuffix(p, "-create-postTags.js") {
			joinMigration = true
		}
	}
	assert.True(t, joinMigration)
	_, ok := files.Lookup(root, "blog/models/postTag.js")
	assert.False(t, ok)
}

func TestForeignKeyMigration(t *testing.T) {
	s := blogSchema()
	s.Models[0], s.Models[1] = s.Models[1], s.Models[0]
	root := generate(s, database.DefaultDbOptions)

	fk := content(t, root, "blog/migrations/20240102030407-add-comments-foreign-keys.js")
	assert.Contains(t, fk, ""+
		"    await queryInterface.addConstraint('comments', {\n"+
		"      fields: ['postId'],\n"+
		"      type: 'foreign key',\n"+
		"      name: 'fk_comments_postId',\n"+
		"      references: {\n"+
		"        table: 'posts',\n"+
		"        field: 'id',\n"+
		"      },\n")
	assert.Contains(t, fk, "    await queryInterface.removeConstraint('comments', 'fk_comments_postId')\n")
	assert.NotContains(t, content(t, root, "blog/migrations/20240102030405-create-comments.js"), "references")
}

func TestDataTypes(t *testing.T) {
	tests := []struct {
		dt   schema.DataType
		d    database.SQLDialect
		want string
	}{
		{schema.DataType{Type: schema.TypeString, Binary: true}, database.Postgres, "DataTypes.STRING.BINARY"},
		{schema.CiTextDataType(), database.Postgres, "DataTypes.CITEXT"},
		{schema.CiTextDataType(), database.SQLite, "DataTypes.TEXT"},
		{schema.DataType{Type: schema.TypeBigInt, Unsigned: true}, database.MySQL, "DataTypes.BIGINT.UNSIGNED"},
		{schema.DataType{Type: schema.TypeBigInt, Unsigned: true}, database.Postgres, "DataTypes.BIGINT"},
		{schema.DecimalDataType(8, 2), database.Postgres, "DataTypes.DECIMAL(8, 2)"},
		{schema.DateDataType(), database.Postgres, "DataTypes.DATEONLY"},
		{schema.EnumDataType("a", "it's"), database.Postgres, `DataTypes.ENUM('a', 'it\'s')`},
		{schema.ArrayDataType(schema.TextDataType()), database.Postgres, "DataTypes.ARRAY(DataTypes.TEXT)"},
		{schema.ArrayDataType(schema.TextDataType()), database.MySQL, "DataTypes.JSON"},
		{schema.JSONBDataType(), database.MariaDB, "DataTypes.JSON"},
		{schema.JSONDataType(), database.MSSQL, "DataTypes.TEXT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataType(tt.dt, tt.d, modelTypes), "%s on %s", tt.dt.Type, tt.d)
	}

	now := schema.DateTimeDataType()
	now.DefaultNow = true
	assert.Equal(t, "Sequelize.fn('now')", defaultValue(now, migrationTypes))
	assert.Equal(t, "DataTypes.NOW", defaultValue(now, modelTypes))
}

func TestDefaultFiles(t *testing.T) {
	s := blogSchema()
	root := generate(s, database.DefaultDbOptions)
	fw := Framework{}

	p, ok := fw.DefaultFile(root)
	require.True(t, ok)
	assert.Equal(t, "blog/models/post.js", p)

	p, ok = fw.DefaultModelFile(s.Models[1], root)
	require.True(t, ok)
	assert.Equal(t, "blog/models/comment.js", p)

	empty := blogSchema()
	empty.Models = nil
	p, ok = fw.DefaultFile(generate(empty, database.DefaultDbOptions))
	require.True(t, ok)
	assert.Equal(t, "blog/README.md", p)
}

func TestModelFromPathMisses(t *testing.T) {
	s := blogSchema()
	fw := Framework{}
	for _, p := range []string{
		"blog/models/index.js",
		"blog/README.md",
		"other/models/post.js",
		"blog/models/tag.js",
		"blog/migrations/create-posts.js",
		"blog/migrations/20240102030405-add-posts-foreign-keys.js",
		"blog/models/POST.js",
		"blog/models/post_.js",
		"blog/models/posts.js",
		"blog/migrations/99999999999999-create-post.js",
		"blog/migrations/20240102030405-create-comments.js",
		"blog/migrations/20240102030406-create-posts.js",
	} {
		_, ok := fw.ModelFromPath(p, s)
		assert.False(t, ok, p)
	}

	// Paths of any case style and noun form are accepted.
	for p, want := range map[string]string{
		"blog/migrations/20240102030405-create-posts.js":   "Post",
		"blog/migrations/20240102030405-create-post.js":    "Post",
		"blog/migrations/20240102030405-create-Posts.js":   "Post",
		"blog/migrations/20240102030406-create-comment.js": "Comment",
		"blog/models/Comment.js":                           "Comment",
		"blog/models/post.js":                              "Post",
	} {
		m, ok := fw.ModelFromPath(p, s)
		if assert.True(t, ok, p) {
			assert.Equal(t, want, m.Name, p)
		}
	}

	invalid := blogSchema()
	invalid.Models[1].Name = "posts"
	_, ok := fw.ModelFromPath("blog/models/post.js", invalid)
	assert.False(t, ok)
}

var createMigration = regexp.MustCompile(`^\d{14}-create-.+\.js$`)

var nouns = []string{"post", "comment", "user", "tag", "book", "review", "invoice", "product", "person", "company"}

// randomSchema builds len(targets) models; model i belongs to model
// targets[i] % n unless that is i itself.
func randomSchema(targets []int) schema.Schema {
	f := newFactory()
	n := len(targets)
	models := make([]schema.Model, n)
	for i := range models {
		models[i] = f.EmptyModel()
		models[i].Name = nouns[i]
		models[i].Timestamps = i%3 == 0
	}
	for i, tgt := range targets {
		if j := tgt % n; j != i {
			models[i].Associations = append(models[i].Associations, f.Association(models[i].ID, models[j].ID))
		}
	}
	s := f.EmptySchema()
	s.Name = "Random"
	s.Models = models
	return s
}

var optionCombos = []database.DbOptions{
	database.DefaultDbOptions,
	{CaseStyle: database.Snake, NounForm: database.Singular, SQLDialect: database.SQLite},
	{CaseStyle: database.Pascal, NounForm: database.Plural, SQLDialect: database.MSSQL},
	{CaseStyle: database.Snake, NounForm: database.Plural, SQLDialect: database.MySQL},
}

func TestGenerationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	targetsGen := gen.IntRange(1, len(nouns)).FlatMap(func(v interface{}) gopter.Gen {
		return gen.SliceOfN(v.(int), gen.IntRange(0, 100))
	}, reflect.TypeOf([]int{}))
	optsGen := gen.IntRange(0, len(optionCombos)-1)

	properties.Property("generating twice yields the same tree", prop.ForAll(
		func(targets []int, o int) bool {
			s := randomSchema(targets)
			return reflect.DeepEqual(generate(s, optionCombos[o]), generate(s, optionCombos[o]))
		},
		targetsGen, optsGen,
	))

	properties.Property("create migrations sort like the models", prop.ForAll(
		func(targets []int, o int) bool {
			s := randomSchema(targets)
			root := generate(s, optionCombos[o])
			fw := Framework{}

			var creates []string
			for _, p := range files.Paths(root) {
				if createMigration.MatchString(p[strings.LastIndex(p, "/")+1:]) {
					if _, ok := fw.ModelFromPath(p, s); ok {
						creates = append(creates, p)
					}
				}
			}
			if !sort.StringsAreSorted(creates) || len(creates) != len(s.Models) {
				return false
			}
			for i, p := range creates {
				m, _ := fw.ModelFromPath(p, s)
				if m.ID != s.Models[i].ID {
					return false
				}
			}
			return true
		},
		targetsGen, optsGen,
	))

	properties.Property("every model file maps back to its model", prop.ForAll(
		func(targets []int, o int) bool {
			s := randomSchema(targets)
			root := generate(s, optionCombos[o])
			fw := Framework{}
			for _, m := range s.Models {
				p, ok := fw.DefaultModelFile(m, root)
				if !ok {
					return false
				}
				back, ok := fw.ModelFromPath(p, s)
				if !ok || back.ID != m.ID {
					return false
				}
			}
			return true
		},
		targetsGen, optsGen,
	))

	properties.TestingRun(t)
}

var (
	trickyModelNames = []string{"Axis", "Axe", "Person", "People", "Child", "Children", "Status", "Datum", "Data", "Post"}
	trickyFieldNames = []string{"id", "ID", "createdAt", "created_at", "updatedAt", "deletedAt", "title", "axes", "person id", "Title"}
)

// trickySchema builds one model per pick. pick[0] selects the model name,
// pick[1] the timestamp flags and the rest the field names. Every model
// but the first belongs to the first.
func trickySchema(picks [][]int) schema.Schema {
	f := newFactory()
	models := make([]schema.Model, len(picks))
	for i, pick := range picks {
		m := f.EmptyModel()
		m.Name = trickyModelNames[pick[0]%len(trickyModelNames)]
		m.Timestamps = pick[1]%2 == 0
		m.Paranoid = m.Timestamps && pick[1]%3 == 0
		for _, k := range pick[2:] {
			m.Fields = append(m.Fields, f.Field(schema.Named(trickyFieldNames[k%len(trickyFieldNames)])))
		}
		if i > 0 {
			m.Associations = append(m.Associations, f.Association(m.ID, models[0].ID))
		}
		models[i] = m
	}
	s := f.EmptySchema()
	s.Name = "Tricky"
	s.Models = models
	return s
}

func TestValidSchemasGenerate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	pickGen := gen.IntRange(2, 5).FlatMap(func(v interface{}) gopter.Gen {
		return gen.SliceOfN(v.(int), gen.IntRange(0, 100))
	}, reflect.TypeOf([]int{}))
	picksGen := gen.IntRange(1, 4).FlatMap(func(v interface{}) gopter.Gen {
		return gen.SliceOfN(v.(int), pickGen)
	}, reflect.TypeOf([][]int{}))
	optsGen := gen.IntRange(0, len(optionCombos)-1)

	properties.Property("a valid schema generates with unique columns", prop.ForAll(
		func(picks [][]int, o int) (ok bool) {
			s := trickySchema(picks)
			if validator.HasSchemaErrors(validator.ValidateSchema(s, nil)) {
				return true
			}
			defer func() {
				if r := recover(); r != nil {
					t.Logf("%v: %v", picks, r)
					ok = false
				}
			}()
			generate(s, optionCombos[o])
			for _, table := range plan.Build(s, optionCombos[o]).Tables {
				names := map[string]bool{}
				attributes := map[string]bool{}
				for _, c := range table.Columns {
					if names[c.Name] || attributes[c.Attribute] {
						t.Logf("%v: table %s repeats column %s", picks, table.Name, c.Name)
						return false
					}
					names[c.Name] = true
					attributes[c.Attribute] = true
				}
			}
			return true
		},
		picksGen, optsGen,
	))

	properties.TestingRun(t)
}

func TestTrickyNamesAreRejected(t *testing.T) {
	for _, picks := range [][][]int{
		{{0, 1}, {1, 1}}, // Axis and Axe share "axes"
		{{7, 1}, {8, 1}}, // Datum and Data
		{{9, 1, 0}},      // field id next to the implicit id
		{{9, 0, 2}},      // createdAt on a timestamped model
		{{9, 0, 3}},      // created_at too
		{{9, 0, 5}},      // deletedAt on a paranoid model
		{{9, 1, 6, 9}},   // title and Title
	} {
		s := trickySchema(picks)
		assert.True(t, validator.HasSchemaErrors(validator.ValidateSchema(s, nil)), "%v", picks)
	}

	s := trickySchema([][]int{{9, 1, 5, 2}, {2, 1, 8}})
	assert.True(t, validator.NoSchemaErrors(validator.ValidateSchema(s, nil)), "no timestamps, so the names are free")
}
