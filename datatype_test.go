package gopinotdb

import (
	"encoding/json"
	"testing"
)

func TestInferType(t *testing.T) {
	testcases := []struct {
		tag             string
		columnType      ColumnType
		isArray         bool
		needsConversion bool
	}{
		{"INT", TypeNumber, false, false},
		{"LONG", TypeNumber, false, false},
		{"FLOAT", TypeNumber, false, false},
		{"DOUBLE", TypeNumber, false, false},
		{"INT_ARRAY", TypeNumber, true, false},
		{"DOUBLE_ARRAY", TypeNumber, true, false},
		{"STRING", TypeString, false, false},
		{"STRING_ARRAY", TypeString, true, false},
		{"BYTES", TypeString, false, false},
		{"BOOLEAN", TypeBoolean, false, false},
		{"BOOLEAN_ARRAY", TypeBoolean, true, false},
		{"TIMESTAMP", TypeTimestamp, false, true},
		{"TIMESTAMP_ARRAY", TypeTimestamp, true, true},
		{"JSON", TypeJSON, false, true},
		{"long", TypeNumber, false, false},
		{"BIG_DECIMAL", TypeString, false, true},
		{"UNKNOWN", TypeString, false, true},
		{"MAP_ARRAY", TypeString, true, true},
		{"", TypeString, false, true},
	}
	for _, tc := range testcases {
		t.Run(tc.tag, func(t *testing.T) {
			columnType, isArray, needsConversion := InferType(tc.tag)
			assertEqualE(t, columnType, tc.columnType)
			assertEqualE(t, isArray, tc.isArray)
			assertEqualE(t, needsConversion, tc.needsConversion)
		})
	}
}

func TestColumnTypeString(t *testing.T) {
	assertEqualE(t, TypeString.String(), "STRING")
	assertEqualE(t, TypeNumber.String(), "NUMBER")
	assertEqualE(t, TypeBoolean.String(), "BOOLEAN")
	assertEqualE(t, TypeTimestamp.String(), "TIMESTAMP")
	assertEqualE(t, TypeJSON.String(), "JSON")
	assertEqualE(t, ColumnType(0).String(), "UNKNOWN")
}

func TestDescribeTypedColumns(t *testing.T) {
	description := describeTypedColumns([]string{"a", "b"}, []string{"INT_ARRAY", "JSON"})
	assertDeepEqualE(t, description, []ColumnDescription{
		{Name: "a", Type: TypeNumber, IsArray: true, WireType: "INT_ARRAY"},
		{Name: "b", Type: TypeJSON, WireType: "JSON", NeedsConversion: true},
	})
}

func TestDescribeUntypedColumns(t *testing.T) {
	rows := [][]any{
		{nil, json.Number("1"), nil, nil},
		{"x", json.Number("2.5"), true, nil},
	}
	description, err := describeUntypedColumns([]string{"s", "n", "b", "empty"}, rows)
	assertNilF(t, err)
	assertEqualE(t, description[0].Type, TypeString)
	assertEqualE(t, description[1].Type, TypeNumber)
	assertEqualE(t, description[2].Type, TypeBoolean)
	assertEqualE(t, description[3].Type, TypeString, "a column of nulls")
	for _, desc := range description {
		assertEqualE(t, desc.WireType, "")
		assertFalseE(t, desc.NeedsConversion)
	}
}

func TestDescribeUntypedColumnsUnknownValue(t *testing.T) {
	_, err := describeUntypedColumns([]string{"a"}, [][]any{{[]any{"nested"}}})
	assertErrIsF(t, err, ErrDatabase)
	var pe *PinotError
	assertErrorsAsF(t, err, &pe)
	assertEqualE(t, pe.Number, ErrCodeUnknownValueType)
}
