package docs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
)

func blog() plan.Plan {
	f := &schema.Factory{IDs: schema.NewSequence("id"), Clock: func() time.Time { return time.Unix(0, 0) }}
	post := f.EmptyModel()
	post.Name = "Post"
	post.Fields = []schema.Field{f.Field(schema.Named("slug"), schema.AsUnique(), schema.WithFieldComment("url path"))}
	comment := f.EmptyModel()
	comment.Name = "Comment"
	comment.Associations = []schema.Association{f.Association(comment.ID, post.ID)}

	s := f.EmptySchema()
	s.Name = "Blog"
	s.Models = []schema.Model{post, comment}
	return plan.Build(s, database.DefaultDbOptions)
}

func TestMermaidDocument(t *testing.T) {
	assert.Equal(t, "# Blog ERD\n\n"+
		"```mermaid\n"+
		"erDiagram\n"+
		"    posts {\n"+
		"        INTEGER id PK\n"+
		"        STRING slug UK \"url path\"\n"+
		"    }\n"+
		"    comments {\n"+
		"        INTEGER id PK\n"+
		"        INTEGER postId FK\n"+
		"    }\n"+
		"    posts ||--o{ comments : postId\n"+
		"```\n", MermaidDocument(blog()))
}

func TestRender(t *testing.T) {
	p := blog()

	puml, err := Render(p, PlantUML)
	require.NoError(t, err)
	assert.Contains(t, puml, "@startuml\n")
	assert.Contains(t, puml, "  slug : STRING <<UQ>>\n")
	assert.Contains(t, puml, "\"posts\" ||--o{ \"comments\" : \"postId\"\n")

	dot, err := Render(p, Graphviz)
	require.NoError(t, err)
	assert.Contains(t, dot, `"posts" -> "comments" [label="postId"];`)

	_, err = Render(p, "svg")
	assert.EqualError(t, err, "unsupported format: svg")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" Mermaid ")
	require.NoError(t, err)
	assert.Equal(t, Mermaid, f)
	assert.Equal(t, ".dot", Graphviz.Extension())

	_, err = ParseFormat("api")
	assert.Error(t, err)
}

func TestDisplayType(t *testing.T) {
	assert.Equal(t, "TIMESTAMP", displayType(schema.DateTimeDataType()))
	assert.Equal(t, "INTEGER_ARRAY", displayType(schema.ArrayDataType(schema.IntegerDataType())))
	assert.Equal(t, "DATE_TIME", string(schema.TypeDateTime))
}
