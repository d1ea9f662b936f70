package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ridoystarlord/modelgen/schema"
)

// typeLexer tokenizes data type expressions such as "decimal(10, 2)" or
// "enum('draft', 'published')".
var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `'(?:\\.|[^'\\])*'|"(?:\\.|[^"\\])*"`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// typeExpr is a type name with optional arguments. Flags such as
// "unsigned" and nested types such as the element of an array are both
// written as nested expressions.
type typeExpr struct {
	Pos  lexer.Position
	Name string     `parser:"@Ident"`
	Args []*typeArg `parser:"( \"(\" ( @@ ( \",\" @@ )* )? \")\" )?"`
}

type typeArg struct {
	Pos    lexer.Position
	Int    *int      `parser:"  @Int"`
	Str    *string   `parser:"| @String"`
	Nested *typeExpr `parser:"| @@"`
}

var typeParser = participle.MustBuild[typeExpr](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
)

// ParseDataType parses a data type expression:
//
//	string | string(255) | string(64, binary)
//	text | citext
//	integer | bigint | smallint, each with optional unsigned, autoincrement
//	float | real | double | decimal | decimal(10) | decimal(10, 2)
//	datetime | date | time, datetime and date with optional now
//	boolean | json | jsonb | blob
//	enum('a', 'b') | array(<type>) | uuid | uuid(v1) | uuid(v4)
//
// Names are case insensitive.
func ParseDataType(expr string) (schema.DataType, error) {
	ast, err := typeParser.ParseString("", expr)
	if err != nil {
		return schema.DataType{}, fmt.Errorf("parsing data type %q: %w", expr, err)
	}
	dt, err := ast.dataType()
	if err != nil {
		return schema.DataType{}, fmt.Errorf("data type %q: %w", expr, err)
	}
	return dt, nil
}

func (e *typeExpr) dataType() (schema.DataType, error) {
	name := strings.ToLower(e.Name)
	switch name {
	case "string", "varchar":
		dt := schema.StringDataType()
		err := e.eachArg(func(a *typeArg) error {
			switch {
			case a.Int != nil:
				n := *a.Int
				dt.Length = &n
			case a.isFlag("binary"):
				dt.Binary = true
			default:
				return a.unexpected(name)
			}
			return nil
		})
		return dt, err
	case "text":
		return e.plain(schema.TextDataType())
	case "citext":
		return e.plain(schema.CiTextDataType())
	case "integer", "int", "bigint", "smallint":
		dt := map[string]schema.DataType{
			"integer":  schema.IntegerDataType(),
			"int":      schema.IntegerDataType(),
			"bigint":   schema.BigIntDataType(),
			"smallint": schema.SmallIntDataType(),
		}[name]
		err := e.eachArg(func(a *typeArg) error {
			switch {
			case a.isFlag("unsigned"):
				dt.Unsigned = true
			case a.isFlag("autoincrement"):
				dt.AutoIncrement = true
			default:
				return a.unexpected(name)
			}
			return nil
		})
		return dt, err
	case "float":
		return e.plain(schema.FloatDataType())
	case "real":
		return e.plain(schema.RealDataType())
	case "double":
		return e.plain(schema.DoubleDataType())
	case "decimal":
		dt := schema.DataType{Type: schema.TypeDecimal}
		if len(e.Args) > 2 {
			return dt, fmt.Errorf("decimal takes at most precision and scale")
		}
		for i, a := range e.Args {
			if a.Int == nil {
				return dt, a.unexpected(name)
			}
			n := *a.Int
			if i == 0 {
				dt.Precision = &n
			} else {
				dt.Scale = &n
			}
		}
		return dt, nil
	case "datetime", "date_time", "timestamp", "date":
		dt := schema.DateTimeDataType()
		if name == "date" {
			dt = schema.DateDataType()
		}
		err := e.eachArg(func(a *typeArg) error {
			if !a.isFlag("now") {
				return a.unexpected(name)
			}
			dt.DefaultNow = true
			return nil
		})
		return dt, err
	case "time":
		return e.plain(schema.TimeDataType())
	case "boolean", "bool":
		return e.plain(schema.BooleanDataType())
	case "enum":
		var values []string
		for _, a := range e.Args {
			if a.Str == nil {
				return schema.DataType{}, a.unexpected(name)
			}
			values = append(values, unquote(*a.Str))
		}
		return schema.EnumDataType(values...), nil
	case "array":
		if len(e.Args) != 1 || e.Args[0].Nested == nil {
			return schema.DataType{}, fmt.Errorf("array takes exactly one element type")
		}
		elem, err := e.Args[0].Nested.dataType()
		if err != nil {
			return schema.DataType{}, err
		}
		return schema.ArrayDataType(elem), nil
	case "json":
		return e.plain(schema.JSONDataType())
	case "jsonb":
		return e.plain(schema.JSONBDataType())
	case "blob":
		return e.plain(schema.BlobDataType())
	case "uuid":
		dt := schema.DataType{Type: schema.TypeUUID}
		err := e.eachArg(func(a *typeArg) error {
			switch {
			case a.isFlag("v1"):
				dt.DefaultVersion = schema.UUIDv1
			case a.isFlag("v4"):
				dt.DefaultVersion = schema.UUIDv4
			default:
				return a.unexpected(name)
			}
			return nil
		})
		return dt, err
	}
	return schema.DataType{}, fmt.Errorf("%d:%d: unknown type %q", e.Pos.Line, e.Pos.Column, e.Name)
}

// eachArg applies fn to every argument, stopping at the first error.
func (e *typeExpr) eachArg(fn func(*typeArg) error) error {
	for _, a := range e.Args {
		if err := fn(a); err != nil {
			return err
		}
	}
	return nil
}

func (e *typeExpr) plain(dt schema.DataType) (schema.DataType, error) {
	if len(e.Args) > 0 {
		return dt, fmt.Errorf("%s takes no arguments", strings.ToLower(e.Name))
	}
	return dt, nil
}

func (a *typeArg) isFlag(name string) bool {
	return a.Nested != nil && len(a.Nested.Args) == 0 && strings.EqualFold(a.Nested.Name, name)
}

func (a *typeArg) unexpected(typeName string) error {
	return fmt.Errorf("%d:%d: unexpected argument %s to %s", a.Pos.Line, a.Pos.Column, a, typeName)
}

func (a *typeArg) String() string {
	switch {
	case a.Int != nil:
		return strconv.Itoa(*a.Int)
	case a.Str != nil:
		return *a.Str
	case a.Nested != nil:
		return a.Nested.Name
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	r := strings.NewReplacer(`\\`, `\`, `\'`, `'`, `\"`, `"`)
	return r.Replace(s)
}

// FormatDataType renders dt in the syntax accepted by ParseDataType.
func FormatDataType(dt schema.DataType) string {
	var name string
	var args []string
	switch dt.Type {
	case schema.TypeString:
		name = "string"
		if dt.Length != nil {
			args = append(args, strconv.Itoa(*dt.Length))
		}
		if dt.Binary {
			args = append(args, "binary")
		}
	case schema.TypeInteger, schema.TypeBigInt, schema.TypeSmallInt:
		name = strings.ToLower(string(dt.Type))
		if dt.Unsigned {
			args = append(args, "unsigned")
		}
		if dt.AutoIncrement {
			args = append(args, "autoincrement")
		}
	case schema.TypeDecimal:
		name = "decimal"
		if dt.Precision != nil {
			args = append(args, strconv.Itoa(*dt.Precision))
			if dt.Scale != nil {
				args = append(args, strconv.Itoa(*dt.Scale))
			}
		}
	case schema.TypeDateTime, schema.TypeDate:
		name = "datetime"
		if dt.Type == schema.TypeDate {
			name = "date"
		}
		if dt.DefaultNow {
			args = append(args, "now")
		}
	case schema.TypeEnum:
		name = "enum"
		for _, v := range dt.Values {
			args = append(args, "'"+strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)+"'")
		}
	case schema.TypeArray:
		name = "array"
		if dt.ArrayType != nil {
			args = append(args, FormatDataType(*dt.ArrayType))
		}
	case schema.TypeUUID:
		name = "uuid"
		if dt.DefaultVersion != "" {
			args = append(args, strings.ToLower(string(dt.DefaultVersion)))
		}
	default:
		name = strings.ToLower(string(dt.Type))
	}
	if len(args) == 0 {
		return name
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}
