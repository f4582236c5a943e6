package gopinotdb

import (
	"encoding/json"
	"strings"
)

// ColumnType is the client side classification of a column.
type ColumnType int

const (
	// TypeString is a STRING or BYTES column, or a column of unknown type.
	TypeString ColumnType = iota + 1
	// TypeNumber is an INT, LONG, FLOAT or DOUBLE column.
	TypeNumber
	// TypeBoolean is a BOOLEAN column.
	TypeBoolean
	// TypeTimestamp is a TIMESTAMP column.
	TypeTimestamp
	// TypeJSON is a JSON column.
	TypeJSON
)

func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeNumber:
		return "NUMBER"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeJSON:
		return "JSON"
	}
	return "UNKNOWN"
}

const arraySuffix = "_ARRAY"

// ColumnDescription describes one column of a result set.
type ColumnDescription struct {
	Name    string
	Type    ColumnType
	IsArray bool
	// WireType is the type tag reported by the broker. It is empty for legacy
	// responses, whose types are inferred from the values.
	WireType string
	// NeedsConversion is set when cell values are converted after decoding.
	NeedsConversion bool
}

// InferType classifies a wire type tag. The tag is split on '_' and only the
// prefix is used, so INT_ARRAY is an array of NUMBER and BIG_DECIMAL falls
// back to STRING with conversion.
func InferType(tag string) (columnType ColumnType, isArray bool, needsConversion bool) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	isArray = strings.HasSuffix(tag, arraySuffix)
	prefix, _, _ := strings.Cut(tag, "_")
	switch prefix {
	case "INT", "LONG", "FLOAT", "DOUBLE":
		return TypeNumber, isArray, false
	case "STRING", "BYTES":
		return TypeString, isArray, false
	case "BOOLEAN":
		return TypeBoolean, isArray, false
	case "TIMESTAMP":
		return TypeTimestamp, isArray, true
	case "JSON":
		return TypeJSON, isArray, true
	}
	return TypeString, isArray, true
}

func describeTypedColumns(names, tags []string) []ColumnDescription {
	description := make([]ColumnDescription, len(names))
	for i, name := range names {
		columnType, isArray, needsConversion := InferType(tags[i])
		description[i] = ColumnDescription{
			Name:            name,
			Type:            columnType,
			IsArray:         isArray,
			WireType:        tags[i],
			NeedsConversion: needsConversion,
		}
	}
	return description
}

// describeUntypedColumns infers column types from the first non-null value of
// each column. A column holding only nulls is a STRING column.
func describeUntypedColumns(names []string, rows [][]any) ([]ColumnDescription, error) {
	description := make([]ColumnDescription, len(names))
	for i, name := range names {
		description[i] = ColumnDescription{Name: name, Type: TypeString}
		for _, row := range rows {
			if row[i] == nil {
				continue
			}
			columnType, err := typeOfValue(row[i])
			if err != nil {
				return nil, err
			}
			description[i].Type = columnType
			break
		}
	}
	return description, nil
}

func typeOfValue(value any) (ColumnType, error) {
	switch value.(type) {
	case string:
		return TypeString, nil
	case json.Number, int64, float64:
		return TypeNumber, nil
	case bool:
		return TypeBoolean, nil
	}
	return 0, &PinotError{
		Number:      ErrCodeUnknownValueType,
		Kind:        KindDatabase,
		Message:     errMsgUnknownValueType,
		MessageArgs: []interface{}{value},
	}
}
