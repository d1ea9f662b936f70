package sequelize

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/codegen"
	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/schema"
)

// Migrations reference types through the Sequelize argument, models
// through DataTypes.
const (
	migrationTypes = "Sequelize"
	modelTypes     = "DataTypes"
)

// dataType renders dt as a Sequelize data type expression, falling back to
// the closest type the dialect supports.
func dataType(dt schema.DataType, d database.SQLDialect, ns string) string {
	t := func(name string) string { return ns + "." + name }

	switch dt.Type {
	case schema.TypeString:
		s := t("STRING")
		if dt.Length != nil {
			s += fmt.Sprintf("(%d)", *dt.Length)
		}
		if dt.Binary {
			s += ".BINARY"
		}
		return s
	case schema.TypeText:
		return t("TEXT")
	case schema.TypeCiText:
		if d == database.Postgres {
			return t("CITEXT")
		}
		return t("TEXT")
	case schema.TypeInteger, schema.TypeBigInt, schema.TypeSmallInt:
		s := t(string(dt.Type))
		if dt.Unsigned && (d == database.MySQL || d == database.MariaDB) {
			s += ".UNSIGNED"
		}
		return s
	case schema.TypeFloat, schema.TypeReal, schema.TypeDouble:
		return t(string(dt.Type))
	case schema.TypeDecimal:
		switch {
		case dt.Precision != nil && dt.Scale != nil:
			return t(fmt.Sprintf("DECIMAL(%d, %d)", *dt.Precision, *dt.Scale))
		case dt.Precision != nil:
			return t(fmt.Sprintf("DECIMAL(%d)", *dt.Precision))
		}
		return t("DECIMAL")
	case schema.TypeDateTime:
		return t("DATE")
	case schema.TypeDate:
		return t("DATEONLY")
	case schema.TypeTime:
		return t("TIME")
	case schema.TypeBoolean:
		return t("BOOLEAN")
	case schema.TypeEnum:
		values := make([]string, len(dt.Values))
		for i, v := range dt.Values {
			values[i] = codegen.Quote(v)
		}
		return t("ENUM(" + strings.Join(values, ", ") + ")")
	case schema.TypeArray:
		if d == database.Postgres && dt.ArrayType != nil {
			return t("ARRAY(" + dataType(*dt.ArrayType, d, ns) + ")")
		}
		return jsonType(d, ns)
	case schema.TypeJSON:
		return jsonType(d, ns)
	case schema.TypeJSONB:
		if d == database.Postgres {
			return t("JSONB")
		}
		return jsonType(d, ns)
	case schema.TypeBlob:
		return t("BLOB")
	case schema.TypeUUID:
		return t("UUID")
	}
	return t(string(dt.Type))
}

func jsonType(d database.SQLDialect, ns string) string {
	if d == database.MSSQL {
		return ns + ".TEXT"
	}
	return ns + ".JSON"
}

// defaultValue renders the defaultValue option of a column, or "".
// Migrations need a database side default, models a client side one.
func defaultValue(dt schema.DataType, ns string) string {
	switch dt.Type {
	case schema.TypeDateTime, schema.TypeDate:
		if !dt.DefaultNow {
			return ""
		}
		if ns == migrationTypes {
			return "Sequelize.fn('now')"
		}
		return ns + ".NOW"
	case schema.TypeUUID:
		switch dt.DefaultVersion {
		case schema.UUIDv1:
			return ns + ".UUIDV1"
		case schema.UUIDv4:
			return ns + ".UUIDV4"
		}
	}
	return ""
}
