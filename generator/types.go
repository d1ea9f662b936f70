package generator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/schema"
)

// ColumnType maps a data type to the closest column type of the dialect.
func ColumnType(dt schema.DataType, d database.SQLDialect) string {
	switch dt.Type {
	case schema.TypeString:
		n := 255
		if dt.Length != nil {
			n = *dt.Length
		}
		switch {
		case dt.Binary && d == database.Postgres:
			return "BYTEA"
		case dt.Binary:
			return fmt.Sprintf("VARBINARY(%d)", n)
		case d == database.MSSQL:
			return fmt.Sprintf("NVARCHAR(%d)", n)
		}
		return fmt.Sprintf("VARCHAR(%d)", n)
	case schema.TypeText:
		return textType(d)
	case schema.TypeCiText:
		if d == database.Postgres {
			return "CITEXT"
		}
		return textType(d)
	case schema.TypeInteger, schema.TypeBigInt, schema.TypeSmallInt:
		return integerType(dt, d)
	case schema.TypeFloat:
		return "FLOAT"
	case schema.TypeReal:
		return "REAL"
	case schema.TypeDouble:
		if d == database.MySQL || d == database.MariaDB {
			return "DOUBLE"
		}
		return "DOUBLE PRECISION"
	case schema.TypeDecimal:
		switch {
		case dt.Precision != nil && dt.Scale != nil:
			return fmt.Sprintf("DECIMAL(%d, %d)", *dt.Precision, *dt.Scale)
		case dt.Precision != nil:
			return fmt.Sprintf("DECIMAL(%d)", *dt.Precision)
		}
		return "DECIMAL"
	case schema.TypeDateTime:
		switch d {
		case database.Postgres:
			return "TIMESTAMP WITH TIME ZONE"
		case database.MSSQL:
			return "DATETIMEOFFSET"
		}
		return "DATETIME"
	case schema.TypeDate:
		return "DATE"
	case schema.TypeTime:
		return "TIME"
	case schema.TypeBoolean:
		switch d {
		case database.MySQL, database.MariaDB:
			return "TINYINT(1)"
		case database.MSSQL:
			return "BIT"
		}
		return "BOOLEAN"
	case schema.TypeEnum:
		if d == database.MySQL || d == database.MariaDB {
			return "ENUM(" + quoteValues(dt.Values) + ")"
		}
		return fmt.Sprintf("VARCHAR(%d)", longest(dt.Values))
	case schema.TypeArray:
		if d == database.Postgres && dt.ArrayType != nil {
			return ColumnType(*dt.ArrayType, d) + "[]"
		}
		return jsonType(d, false)
	case schema.TypeJSON:
		return jsonType(d, false)
	case schema.TypeJSONB:
		return jsonType(d, true)
	case schema.TypeBlob:
		switch d {
		case database.Postgres:
			return "BYTEA"
		case database.MSSQL:
			return "VARBINARY(MAX)"
		}
		return "BLOB"
	case schema.TypeUUID:
		switch d {
		case database.Postgres:
			return "UUID"
		case database.MSSQL:
			return "UNIQUEIDENTIFIER"
		}
		return "CHAR(36)"
	}
	return strings.ToUpper(string(dt.Type))
}

func textType(d database.SQLDialect) string {
	if d == database.MSSQL {
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}

func jsonType(d database.SQLDialect, binary bool) string {
	switch d {
	case database.Postgres:
		if binary {
			return "JSONB"
		}
		return "JSON"
	case database.MySQL, database.MariaDB:
		return "JSON"
	}
	return textType(d)
}

func integerType(dt schema.DataType, d database.SQLDialect) string {
	base := map[schema.DataTypeType]string{
		schema.TypeInteger:  "INTEGER",
		schema.TypeBigInt:   "BIGINT",
		schema.TypeSmallInt: "SMALLINT",
	}[dt.Type]

	switch d {
	case database.Postgres:
		if dt.AutoIncrement {
			return map[schema.DataTypeType]string{
				schema.TypeInteger:  "SERIAL",
				schema.TypeBigInt:   "BIGSERIAL",
				schema.TypeSmallInt: "SMALLSERIAL",
			}[dt.Type]
		}
	case database.MySQL, database.MariaDB:
		if dt.Unsigned {
			base += " UNSIGNED"
		}
		if dt.AutoIncrement {
			base += " AUTO_INCREMENT"
		}
	case database.MSSQL:
		if base == "INTEGER" {
			base = "INT"
		}
		if dt.AutoIncrement {
			base += " IDENTITY(1,1)"
		}
	}
	return base
}

// defaultValue renders the DEFAULT expression of a column, or "".
func defaultValue(dt schema.DataType, d database.SQLDialect) string {
	switch dt.Type {
	case schema.TypeDateTime, schema.TypeDate:
		if !dt.DefaultNow {
			return ""
		}
		if d == database.MSSQL {
			return "SYSDATETIMEOFFSET()"
		}
		return "CURRENT_TIMESTAMP"
	case schema.TypeUUID:
		switch {
		case dt.DefaultVersion == "":
			return ""
		case d == database.Postgres && dt.DefaultVersion == schema.UUIDv1:
			return "uuid_generate_v1()"
		case d == database.Postgres:
			return "gen_random_uuid()"
		case d == database.MSSQL:
			return "NEWID()"
		case d == database.MySQL || d == database.MariaDB:
			return "(UUID())"
		}
	}
	return ""
}

func quoteValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = database.QuoteString(v)
	}
	return strings.Join(quoted, ", ")
}

func longest(values []string) int {
	n := 1
	for _, v := range values {
		if len(v) > n {
			n = len(v)
		}
	}
	return n
}
