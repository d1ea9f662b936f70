package schema

import (
	"fmt"
	"strings"
)

// DataTypeType identifies the kind of a DataType.
type DataTypeType string

const (
	TypeString   DataTypeType = "STRING"
	TypeText     DataTypeType = "TEXT"
	TypeCiText   DataTypeType = "CITEXT"
	TypeInteger  DataTypeType = "INTEGER"
	TypeBigInt   DataTypeType = "BIGINT"
	TypeSmallInt DataTypeType = "SMALLINT"
	TypeFloat    DataTypeType = "FLOAT"
	TypeReal     DataTypeType = "REAL"
	TypeDouble   DataTypeType = "DOUBLE"
	TypeDecimal  DataTypeType = "DECIMAL"
	TypeDateTime DataTypeType = "DATE_TIME"
	TypeDate     DataTypeType = "DATE"
	TypeTime     DataTypeType = "TIME"
	TypeBoolean  DataTypeType = "BOOLEAN"
	TypeEnum     DataTypeType = "ENUM"
	TypeArray    DataTypeType = "ARRAY"
	TypeJSON     DataTypeType = "JSON"
	TypeJSONB    DataTypeType = "JSONB"
	TypeBlob     DataTypeType = "BLOB"
	TypeUUID     DataTypeType = "UUID"
)

// DataTypeTypes lists every kind in display order.
var DataTypeTypes = []DataTypeType{
	TypeString, TypeText, TypeCiText, TypeInteger, TypeBigInt, TypeSmallInt,
	TypeFloat, TypeReal, TypeDouble, TypeDecimal, TypeDateTime, TypeDate,
	TypeTime, TypeBoolean, TypeEnum, TypeArray, TypeJSON, TypeJSONB,
	TypeBlob, TypeUUID,
}

// UUIDVersion selects the default value generator of a UUID field.
type UUIDVersion string

const (
	UUIDv1 UUIDVersion = "V1"
	UUIDv4 UUIDVersion = "V4"
)

// DataType is a closed variant: Type selects which of the parameter fields
// are meaningful.
type DataType struct {
	Type DataTypeType `json:"type" yaml:"type"`

	// STRING
	Length *int `json:"length,omitempty" yaml:"length,omitempty"`
	Binary bool `json:"binary,omitempty" yaml:"binary,omitempty"`

	// INTEGER, BIGINT, SMALLINT
	Unsigned      bool `json:"unsigned,omitempty" yaml:"unsigned,omitempty"`
	AutoIncrement bool `json:"autoincrement,omitempty" yaml:"autoincrement,omitempty"`

	// DECIMAL
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale     *int `json:"scale,omitempty" yaml:"scale,omitempty"`

	// DATE_TIME, DATE
	DefaultNow bool `json:"defaultNow,omitempty" yaml:"default_now,omitempty"`

	// ENUM
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`

	// ARRAY
	ArrayType *DataType `json:"arrayType,omitempty" yaml:"array_type,omitempty"`

	// UUID
	DefaultVersion UUIDVersion `json:"defaultVersion,omitempty" yaml:"default_version,omitempty"`
}

func StringDataType() DataType { return DataType{Type: TypeString} }
func TextDataType() DataType { return DataType{Type: TypeText} }
func CiTextDataType() DataType { return DataType{Type: TypeCiText} }
func IntegerDataType() DataType { return DataType{Type: TypeInteger} }
func BigIntDataType() DataType { return DataType{Type: TypeBigInt} }
func SmallIntDataType() DataType { return DataType{Type: TypeSmallInt} }
func FloatDataType() DataType { return DataType{Type: TypeFloat} }
func RealDataType() DataType { return DataType{Type: TypeReal} }
func DoubleDataType() DataType { return DataType{Type: TypeDouble} }
func DateTimeDataType() DataType { return DataType{Type: TypeDateTime} }
func DateDataType() DataType { return DataType{Type: TypeDate} }
func TimeDataType() DataType { return DataType{Type: TypeTime} }
func BooleanDataType() DataType { return DataType{Type: TypeBoolean} }
func JSONDataType() DataType { return DataType{Type: TypeJSON} }
func JSONBDataType() DataType { return DataType{Type: TypeJSONB} }
func BlobDataType() DataType { return DataType{Type: TypeBlob} }

// DecimalDataType returns a DECIMAL with the given precision and scale.
func DecimalDataType(precision, scale int) DataType {
	return DataType{Type: TypeDecimal, Precision: &precision, Scale: &scale}
}

// EnumDataType returns an ENUM over values.
func EnumDataType(values ...string) DataType {
	return DataType{Type: TypeEnum, Values: values}
}

// ArrayDataType returns an ARRAY of the given element type.
func ArrayDataType(of DataType) DataType {
	return DataType{Type: TypeArray, ArrayType: &of}
}

// UUIDDataType returns a UUID defaulting to a generated value of the given version.
func UUIDDataType(version UUIDVersion) DataType {
	return DataType{Type: TypeUUID, DefaultVersion: version}
}

// IsNumeric reports whether the type is an integer or floating point kind.
func (dt DataType) IsNumeric() bool {
	switch dt.Type {
	case TypeInteger, TypeBigInt, TypeSmallInt, TypeFloat, TypeReal, TypeDouble, TypeDecimal:
		return true
	}
	return false
}

// IsInteger reports whether the type is one of the integer kinds.
func (dt DataType) IsInteger() bool {
	switch dt.Type {
	case TypeInteger, TypeBigInt, TypeSmallInt:
		return true
	}
	return false
}

// DisplayDataType renders a short human readable label such as
// "String (255)" or "Array<Integer>".
func DisplayDataType(dt DataType) string {
	switch dt.Type {
	case TypeString:
		label := "String"
		if dt.Length != nil {
			label = fmt.Sprintf("String (%d)", *dt.Length)
		}
		if dt.Binary {
			label += " binary"
		}
		return label
	case TypeText:
		return "Text"
	case TypeCiText:
		return "Case-insensitive text"
	case TypeInteger, TypeBigInt, TypeSmallInt:
		label := map[DataTypeType]string{
			TypeInteger:  "Integer",
			TypeBigInt:   "Big integer",
			TypeSmallInt: "Small integer",
		}[dt.Type]
		if dt.Unsigned {
			label = "Unsigned " + strings.ToLower(label)
		}
		if dt.AutoIncrement {
			label += " (auto increment)"
		}
		return label
	case TypeFloat:
		return "Float"
	case TypeReal:
		return "Real"
	case TypeDouble:
		return "Double"
	case TypeDecimal:
		if dt.Precision != nil && dt.Scale != nil {
			return fmt.Sprintf("Decimal (%d, %d)", *dt.Precision, *dt.Scale)
		}
		if dt.Precision != nil {
			return fmt.Sprintf("Decimal (%d)", *dt.Precision)
		}
		return "Decimal"
	case TypeDateTime:
		return "Date time"
	case TypeDate:
		return "Date"
	case TypeTime:
		return "Time"
	case TypeBoolean:
		return "Boolean"
	case TypeEnum:
		return fmt.Sprintf("Enum (%s)", strings.Join(dt.Values, ", "))
	case TypeArray:
		if dt.ArrayType == nil {
			return "Array"
		}
		return fmt.Sprintf("Array<%s>", DisplayDataType(*dt.ArrayType))
	case TypeJSON:
		return "JSON"
	case TypeJSONB:
		return "JSONB"
	case TypeBlob:
		return "Blob"
	case TypeUUID:
		return "UUID"
	}
	return string(dt.Type)
}
