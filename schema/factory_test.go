package schema

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFactory() *Factory {
	t := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Factory{IDs: NewSequence("id-"), Clock: func() time.Time { return t }}
}

func TestEmptyEntities(t *testing.T) {
	f := fixedFactory()

	s := f.EmptySchema()
	assert.True(t, IsNewSchema(s))
	assert.Empty(t, s.Models)
	assert.Nil(t, s.ForkedFrom)
	assert.Equal(t, s.CreatedAt, s.UpdatedAt)

	m := f.EmptyModel()
	assert.Equal(t, "id-1", m.ID)
	assert.NotNil(t, m.Fields)
	assert.NotNil(t, m.Associations)
	assert.NotNil(t, m.Indexes)
	assert.False(t, m.Timestamps)
	assert.False(t, m.Paranoid)

	fd := f.EmptyField()
	assert.Equal(t, "id-2", fd.ID)
	assert.Equal(t, TypeString, fd.Type.Type)
	assert.False(t, fd.PrimaryKey || fd.Required || fd.Unique)

	idx := f.EmptyIndex()
	assert.Equal(t, BTree, idx.Using)
	assert.Empty(t, idx.Fields)

	a := f.EmptyAssociation("src", "dst")
	assert.Equal(t, BelongsTo, a.Type.Type)
	assert.Equal(t, "src", a.SourceModelID)
	assert.Equal(t, "dst", a.TargetModelID)
	assert.Nil(t, a.ForeignKey)
	assert.Nil(t, a.Alias)
}

func TestFieldOptionsOverrideDefaults(t *testing.T) {
	f := fixedFactory()

	fd := f.Field(Named("title"), OfType(TextDataType()), AsRequired(), AsUnique())
	assert.Equal(t, "title", fd.Name)
	assert.Equal(t, TypeText, fd.Type.Type)
	assert.True(t, fd.Required)
	assert.True(t, fd.Unique)
	assert.False(t, fd.PrimaryKey)
	assert.NotEmpty(t, fd.ID)
}

func TestAssociationOptions(t *testing.T) {
	f := fixedFactory()

	a := f.Association("a", "b", WithType(HasMany), WithAlias("items"), WithForeignKey("ownerId"))
	assert.Equal(t, HasMany, a.Type.Type)
	assert.Equal(t, "items", a.AliasOrEmpty())
	assert.Equal(t, "ownerId", a.ForeignKeyOrEmpty())
	assert.True(t, a.IsMany())

	m2m := f.Association("a", "a", WithThroughTable("friendships"))
	assert.Equal(t, BelongsToMany, m2m.Type.Type)
	require.NotNil(t, m2m.Type.Through)
	assert.Equal(t, ThroughTable, m2m.Type.Through.Type)
	assert.True(t, m2m.IsSelfReferential())
}

func TestGeneratorsProduceUniqueIDs(t *testing.T) {
	gens := map[string]IDGenerator{
		"ulid":     NewULIDGenerator(),
		"uuid":     UUIDGenerator{},
		"sequence": NewSequence("s"),
	}
	for name, gen := range gens {
		t.Run(name, func(t *testing.T) {
			seen := map[string]bool{}
			for i := 0; i < 500; i++ {
				id := gen.NewID()
				require.NotEmpty(t, id)
				require.False(t, seen[id], "duplicate id %s", id)
				seen[id] = true
			}
		})
	}
}

func TestULIDsSortInCreationOrder(t *testing.T) {
	gen := NewULIDGenerator()
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = gen.NewID()
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	f := fixedFactory()
	forked := "original"
	length := 120

	post := f.EmptyModel()
	post.Name = "Post"
	post.Timestamps = true
	post.Paranoid = true
	post.Comment = "blog posts"
	post.Fields = []Field{
		f.Field(Named("title"), OfType(DataType{Type: TypeString, Length: &length}), AsRequired()),
		f.Field(Named("status"), OfType(EnumDataType("draft", "published"))),
		f.Field(Named("tags"), OfType(ArrayDataType(StringDataType()))),
		f.Field(Named("price"), OfType(DecimalDataType(10, 2))),
	}
	idx := f.EmptyIndex()
	idx.Name = "post_title"
	idx.Unique = true
	idx.Fields = []IndexField{{Name: "title", Length: &length, Order: Desc}}
	post.Indexes = []Index{idx}

	tag := f.EmptyModel()
	tag.Name = "Tag"
	post.Associations = []Association{
		f.Association(post.ID, tag.ID, WithThroughTable("post_tags"), WithTargetForeignKey("tagRef")),
	}

	s := f.EmptySchema()
	s.ID = "schema-1"
	s.Name = "Blog"
	s.ForkedFrom = &forked
	s.Models = []Model{post, tag}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded Schema
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestDisplayDataType(t *testing.T) {
	length := 64
	tests := []struct {
		dt   DataType
		want string
	}{
		{StringDataType(), "String"},
		{DataType{Type: TypeString, Length: &length, Binary: true}, "String (64) binary"},
		{DataType{Type: TypeInteger, Unsigned: true, AutoIncrement: true}, "Unsigned integer (auto increment)"},
		{DecimalDataType(8, 3), "Decimal (8, 3)"},
		{EnumDataType("a", "b"), "Enum (a, b)"},
		{ArrayDataType(IntegerDataType()), "Array<Integer>"},
		{UUIDDataType(UUIDv4), "UUID"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayDataType(tt.dt))
	}
}
