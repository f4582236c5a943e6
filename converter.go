package gopinotdb

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Values without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// pinotTypeToGo translates a column description to the Go type of its values.
func pinotTypeToGo(desc ColumnDescription) reflect.Type {
	if desc.IsArray {
		return reflect.TypeOf([]any{})
	}
	switch desc.Type {
	case TypeNumber:
		if isIntegerTag(desc.WireType) {
			return reflect.TypeOf(int64(0))
		}
		return reflect.TypeOf(float64(0))
	case TypeBoolean:
		return reflect.TypeOf(true)
	case TypeTimestamp:
		return reflect.TypeOf(time.Time{})
	case TypeJSON:
		return reflect.TypeOf((*any)(nil)).Elem()
	}
	return reflect.TypeOf("")
}

func isIntegerTag(tag string) bool {
	prefix, _, _ := strings.Cut(strings.ToUpper(tag), "_")
	return prefix == "INT" || prefix == "LONG"
}

// convertRows converts every cell in place according to the column descriptions.
func convertRows(description []ColumnDescription, rows [][]any) error {
	for _, row := range rows {
		for i, desc := range description {
			value, err := convertCell(desc, row[i])
			if err != nil {
				return err
			}
			row[i] = value
		}
	}
	return nil
}

// convertCell converts one decoded cell. Nulls are never converted and array
// cells are converted element by element.
func convertCell(desc ColumnDescription, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if desc.IsArray {
		if elements, ok := value.([]any); ok {
			converted := make([]any, len(elements))
			for i, element := range elements {
				v, err := convertScalar(desc, element)
				if err != nil {
					return nil, err
				}
				converted[i] = v
			}
			return converted, nil
		}
	}
	return convertScalar(desc, value)
}

func convertScalar(desc ColumnDescription, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if desc.Type == TypeNumber {
		if desc.WireType == "" {
			return normalizeUntyped(value), nil
		}
		return normalizeNumber(value, desc.WireType), nil
	}
	if !desc.NeedsConversion {
		return normalizeUntyped(value), nil
	}
	switch desc.Type {
	case TypeTimestamp:
		t, err := toTimestamp(value)
		if err != nil {
			return nil, conversionError(desc, value, err)
		}
		return t, nil
	case TypeJSON:
		v, err := toJSONValue(value)
		if err != nil {
			return nil, conversionError(desc, value, err)
		}
		return v, nil
	}
	return stringify(value), nil
}

// normalizeNumber turns a json.Number into int64 for integer tags and float64
// otherwise. Strings such as "Infinity" are parsed as floats.
func normalizeNumber(value any, tag string) any {
	var text string
	switch v := value.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = v
	default:
		return value
	}
	if isIntegerTag(tag) {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value
	}
	return f
}

// normalizeUntyped turns a json.Number into int64 when integral, else float64.
func normalizeUntyped(value any) any {
	n, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func toTimestamp(value any) (time.Time, error) {
	switch v := value.(type) {
	case json.Number:
		millis, err := v.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(millis).UTC(), nil
	case string:
		return parseTimestamp(v)
	}
	return time.Time{}, fmt.Errorf("unexpected timestamp value of type %T", value)
}

// parseTimestamp parses the broker's timestamp text, tolerating surrounding
// quotes left by some broker versions.
func parseTimestamp(text string) (time.Time, error) {
	text = strings.Trim(strings.TrimSpace(text), `"'`)
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, text, time.UTC)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func toJSONValue(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}
	if text == "" {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// stringify renders a value of an unknown column type as text.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}

func conversionError(desc ColumnDescription, value any, err error) *PinotError {
	return (&PinotError{
		Number:      ErrCodeConversionFailed,
		Kind:        KindDatabase,
		Message:     ErrMsgConversionFailed,
		MessageArgs: []interface{}{value, desc.Name, desc.Type},
	}).withCause(err)
}
