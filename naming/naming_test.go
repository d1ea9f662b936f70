package naming

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/ridoystarlord/modelgen/database"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"blog post", []string{"blog", "post"}},
		{"blogPost", []string{"blog", "Post"}},
		{"BlogPost", []string{"Blog", "Post"}},
		{"blog_post-item", []string{"blog", "post", "item"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"userID", []string{"user", "ID"}},
		{"address2line", []string{"address", "2", "line"}},
		{"  ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Words(tt.in), tt.in)
	}
}

func TestToCase(t *testing.T) {
	tests := []struct {
		in                   string
		camel, snake, pascal string
	}{
		{"blog post", "blogPost", "blog_post", "BlogPost"},
		{"BlogPost", "blogPost", "blog_post", "BlogPost"},
		{"blog_post", "blogPost", "blog_post", "BlogPost"},
		{"first name", "firstName", "first_name", "FirstName"},
		{"userID", "userID", "user_id", "UserID"},
		{"HTTPServer", "httpServer", "http_server", "HTTPServer"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.camel, ToCase(database.Camel, tt.in), "camel %q", tt.in)
		assert.Equal(t, tt.snake, ToCase(database.Snake, tt.in), "snake %q", tt.in)
		assert.Equal(t, tt.pascal, ToCase(database.Pascal, tt.in), "pascal %q", tt.in)
	}
	assert.Equal(t, "blog-post", KebabCase("BlogPost"))
	assert.Equal(t, "blog post", NoCase("blog_post"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Normalize("User"), Normalize("user"))
	assert.Equal(t, Normalize("First Name"), Normalize("first_name"))
	assert.Equal(t, Normalize("firstName"), Normalize("FIRST-NAME"))
	assert.NotEqual(t, Normalize("post"), Normalize("posts"))
}

func TestCaseIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	styles := []database.CaseStyle{database.Camel, database.Snake, database.Pascal}
	for _, style := range styles {
		style := style
		properties.Property("casing twice equals casing once: "+string(style), prop.ForAll(
			func(s string) bool {
				once := ToCase(style, s)
				return ToCase(style, once) == once
			},
			gen.RegexMatch(`[A-Za-z0-9 _-]{0,24}`),
		))
	}

	properties.Property("kebab casing twice equals casing once", prop.ForAll(
		func(s string) bool {
			return KebabCase(KebabCase(s)) == KebabCase(s)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestPluralAndSingular(t *testing.T) {
	tests := []struct{ singular, plural string }{
		{"post", "posts"},
		{"comment", "comments"},
		{"category", "categories"},
		{"person", "people"},
		{"child", "children"},
		{"status", "statuses"},
		{"criterion", "criteria"},
		{"sheep", "sheep"},
		{"Post", "Posts"},
		{"blog post", "blog posts"},
		{"BlogPost", "BlogPosts"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.plural, Plural(tt.singular), "plural of %q", tt.singular)
		assert.Equal(t, tt.singular, Singular(tt.plural), "singular of %q", tt.plural)
	}
}

func TestPluralNeverPanics(t *testing.T) {
	for _, s := range []string{"", " ", "__", "123", "x", "ß"} {
		assert.NotPanics(t, func() { Plural(s) })
		assert.NotPanics(t, func() { Singular(s) })
	}
	assert.Equal(t, "", Plural(""))
	assert.Equal(t, "zorbs", Plural("zorb"))
}

func TestToNounForm(t *testing.T) {
	assert.Equal(t, "users", ToNounForm(database.Plural, "user"))
	assert.Equal(t, "user", ToNounForm(database.Singular, "users"))
}

func TestDerivedNames(t *testing.T) {
	camel := database.DefaultDbOptions
	snake := database.DbOptions{CaseStyle: database.Snake, NounForm: database.Plural}
	pascalSingular := database.DbOptions{CaseStyle: database.Pascal, NounForm: database.Singular}

	assert.Equal(t, "posts", TableName("Post", camel))
	assert.Equal(t, "blogPosts", TableName("blog post", camel))
	assert.Equal(t, "blog_posts", TableName("BlogPost", snake))
	assert.Equal(t, "BlogPost", TableName("blog posts", pascalSingular))

	assert.Equal(t, "post", FileName("Posts", camel))
	assert.Equal(t, "blog_post", FileName("BlogPost", snake))

	assert.Equal(t, "postId", ForeignKeyName("Post", camel))
	assert.Equal(t, "post_id", ForeignKeyName("Posts", snake))
	assert.Equal(t, "PostId", ForeignKeyName("Post", pascalSingular))
	assert.Equal(t, "postId", ForeignKeyAttribute("Post"))

	assert.Equal(t, "first_name", ColumnName("firstName", snake))
	assert.Equal(t, "firstName", AttributeName("first_name"))

	assert.Equal(t, "BlogPost", ModelClassName("blog posts"))
	assert.Equal(t, "comments", AccessorName("Comment", true))
	assert.Equal(t, "post", AccessorName("Posts", false))
}
