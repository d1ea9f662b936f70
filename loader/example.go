package loader

import "github.com/ridoystarlord/modelgen/schema"

// Example returns a small blog schema: users write posts, posts have
// comments and tags.
func Example(name string, f *schema.Factory) schema.Schema {
	model := func(name string, fields ...schema.Field) schema.Model {
		m := f.EmptyModel()
		m.Name = name
		m.Timestamps = true
		m.Fields = fields
		return m
	}
	length := func(n int) schema.DataType {
		dt := schema.StringDataType()
		dt.Length = &n
		return dt
	}

	user := model("User",
		f.Field(schema.Named("email"), schema.OfType(length(255)), schema.AsRequired(), schema.AsUnique()),
		f.Field(schema.Named("name"), schema.OfType(length(100))),
	)
	post := model("Post",
		f.Field(schema.Named("title"), schema.OfType(length(255)), schema.AsRequired()),
		f.Field(schema.Named("body"), schema.OfType(schema.TextDataType())),
		f.Field(schema.Named("status"), schema.OfType(schema.EnumDataType("draft", "published")), schema.AsRequired()),
		f.Field(schema.Named("publishedAt"), schema.OfType(schema.DateTimeDataType())),
	)
	post.Paranoid = true
	comment := model("Comment",
		f.Field(schema.Named("body"), schema.OfType(schema.TextDataType()), schema.AsRequired()),
	)
	tag := model("Tag",
		f.Field(schema.Named("name"), schema.OfType(length(64)), schema.AsRequired(), schema.AsUnique()),
	)

	user.Associations = []schema.Association{
		f.Association(user.ID, post.ID, schema.WithType(schema.HasMany), schema.WithForeignKey("author id")),
	}
	post.Associations = []schema.Association{
		f.Association(post.ID, user.ID, schema.WithAlias("author")),
		f.Association(post.ID, comment.ID, schema.WithType(schema.HasMany)),
		f.Association(post.ID, tag.ID, schema.WithType(schema.BelongsToMany)),
	}
	comment.Associations = []schema.Association{
		f.Association(comment.ID, post.ID),
	}

	idx := f.EmptyIndex()
	idx.Fields = []schema.IndexField{{Name: "status"}, {Name: "publishedAt", Order: schema.Desc}}
	post.Indexes = []schema.Index{idx}

	s := f.EmptySchema()
	s.Name = name
	s.Models = []schema.Model{user, post, comment, tag}
	return s
}
