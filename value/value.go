// Value package defines the element types held by host and device
// columns, and the dtype codes the execution backend uses to describe
// a registered table's schema.
package value

import (
	"time"

	u "github.com/araddon/gou"
)

var _ = u.EMPTY

// ValueType is the element type of a single column, ie int64, string, etc
type ValueType uint8

const (
	// Enum values for Type system, DO NOT CHANGE the numbers, do not use iota
	UnknownType   ValueType = 0
	BoolType      ValueType = 1
	Int8Type      ValueType = 2
	Int16Type     ValueType = 3
	Int32Type     ValueType = 4
	Int64Type     ValueType = 5
	Float32Type   ValueType = 10
	Float64Type   ValueType = 11
	StringType    ValueType = 20
	CategoryType  ValueType = 21
	Date32Type    ValueType = 30
	Date64Type    ValueType = 31
	TimestampType ValueType = 32
)

func (m ValueType) String() string {
	switch m {
	case BoolType:
		return "bool"
	case Int8Type:
		return "int8"
	case Int16Type:
		return "int16"
	case Int32Type:
		return "int32"
	case Int64Type:
		return "int64"
	case Float32Type:
		return "float32"
	case Float64Type:
		return "float64"
	case StringType:
		return "string"
	case CategoryType:
		return "category"
	case Date32Type:
		return "date32"
	case Date64Type:
		return "date64"
	case TimestampType:
		return "timestamp"
	default:
		return "unknown"
	}
}

func (m ValueType) IsNumeric() bool {
	switch m {
	case Int8Type, Int16Type, Int32Type, Int64Type, Float32Type, Float64Type:
		return true
	}
	return false
}

// DType is the backend's column type code.  These are the codes the
// engine's table registration call expects on the wire.
type DType int32

const (
	// DO NOT CHANGE the numbers, they are shared with the engine
	DTypeInvalid        DType = 0
	DTypeInt8           DType = 1
	DTypeInt16          DType = 2
	DTypeInt32          DType = 3
	DTypeInt64          DType = 4
	DTypeFloat32        DType = 5
	DTypeFloat64        DType = 6
	DTypeBool8          DType = 7
	DTypeDate32         DType = 8
	DTypeDate64         DType = 9
	DTypeTimestamp      DType = 10
	DTypeCategory       DType = 11
	DTypeString         DType = 12
	DTypeStringCategory DType = 13
)

func (m DType) String() string {
	switch m {
	case DTypeInt8:
		return "GDF_INT8"
	case DTypeInt16:
		return "GDF_INT16"
	case DTypeInt32:
		return "GDF_INT32"
	case DTypeInt64:
		return "GDF_INT64"
	case DTypeFloat32:
		return "GDF_FLOAT32"
	case DTypeFloat64:
		return "GDF_FLOAT64"
	case DTypeBool8:
		return "GDF_BOOL8"
	case DTypeDate32:
		return "GDF_DATE32"
	case DTypeDate64:
		return "GDF_DATE64"
	case DTypeTimestamp:
		return "GDF_TIMESTAMP"
	case DTypeCategory:
		return "GDF_CATEGORY"
	case DTypeString:
		return "GDF_STRING"
	case DTypeStringCategory:
		return "GDF_STRING_CATEGORY"
	default:
		return "GDF_invalid"
	}
}

// ToDType coerces a column element type to the backend type code.
// Strings are registered as string categories, the only string
// representation device tables carry.
func ToDType(t ValueType) DType {
	switch t {
	case Int8Type:
		return DTypeInt8
	case Int16Type:
		return DTypeInt16
	case Int32Type:
		return DTypeInt32
	case Int64Type:
		return DTypeInt64
	case Float32Type:
		return DTypeFloat32
	case Float64Type:
		return DTypeFloat64
	case BoolType:
		return DTypeBool8
	case Date32Type:
		return DTypeDate32
	case Date64Type:
		return DTypeDate64
	case TimestampType:
		return DTypeTimestamp
	case CategoryType:
		return DTypeCategory
	case StringType:
		return DTypeStringCategory
	}
	u.Debugf("no dtype for value type %v", t)
	return DTypeInvalid
}

// ValueTypeOf returns the element type of a native go column slice
// such as []int64 or []string.  Unsupported slices return UnknownType.
func ValueTypeOf(col interface{}) ValueType {
	switch col.(type) {
	case []bool:
		return BoolType
	case []int8:
		return Int8Type
	case []int16:
		return Int16Type
	case []int32:
		return Int32Type
	case []int64, []int:
		return Int64Type
	case []float32:
		return Float32Type
	case []float64:
		return Float64Type
	case []string:
		return StringType
	case []time.Time:
		return TimestampType
	}
	return UnknownType
}

// Len of a native go column slice, -1 if it is not a supported column.
func Len(col interface{}) int {
	switch vals := col.(type) {
	case []bool:
		return len(vals)
	case []int8:
		return len(vals)
	case []int16:
		return len(vals)
	case []int32:
		return len(vals)
	case []int64:
		return len(vals)
	case []int:
		return len(vals)
	case []float32:
		return len(vals)
	case []float64:
		return len(vals)
	case []string:
		return len(vals)
	case []time.Time:
		return len(vals)
	}
	return -1
}
