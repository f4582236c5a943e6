package arrowbatches

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pinot-dbapi/gopinotdb"
)

// ToRecord builds an Arrow record from rows normalized by a cursor. The
// caller owns the record and must release it.
func ToRecord(mem memory.Allocator, description []gopinotdb.ColumnDescription, rows [][]any) (arrow.Record, error) {
	schema := Schema(description)
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for rowIdx, row := range rows {
		if len(row) != len(description) {
			return nil, &gopinotdb.PinotError{
				Number:      gopinotdb.ErrCodeRowArity,
				Kind:        gopinotdb.KindDatabase,
				Message:     gopinotdb.ErrMsgRowArity,
				MessageArgs: []interface{}{rowIdx, len(row), len(description)},
			}
		}
		for colIdx, value := range row {
			if err := appendValue(builder.Field(colIdx), value); err != nil {
				return nil, &gopinotdb.PinotError{
					Number:      gopinotdb.ErrCodeConversionFailed,
					Kind:        gopinotdb.KindData,
					Message:     gopinotdb.ErrMsgConversionFailed,
					MessageArgs: []interface{}{value, description[colIdx].Name, schema.Field(colIdx).Type},
					Detail:      err.Error(),
				}
			}
		}
	}
	return builder.NewRecord(), nil
}

func appendValue(b array.Builder, value any) error {
	if value == nil {
		b.AppendNull()
		return nil
	}
	switch b := b.(type) {
	case *array.Int64Builder:
		i, err := toInt64(value)
		if err != nil {
			return err
		}
		b.Append(i)
	case *array.Float64Builder:
		f, err := toFloat64(value)
		if err != nil {
			return err
		}
		b.Append(f)
	case *array.BooleanBuilder:
		switch v := value.(type) {
		case bool:
			b.Append(v)
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			b.Append(parsed)
		default:
			return fmt.Errorf("unexpected boolean value of type %T", value)
		}
	case *array.TimestampBuilder:
		t, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("unexpected timestamp value of type %T", value)
		}
		b.Append(arrow.Timestamp(t.UnixMicro()))
	case *array.StringBuilder:
		text, err := toText(value)
		if err != nil {
			return err
		}
		b.Append(text)
	case *array.ListBuilder:
		elems, ok := value.([]any)
		if !ok {
			return fmt.Errorf("unexpected array value of type %T", value)
		}
		b.Append(true)
		for _, elem := range elems {
			if err := appendValue(b.ValueBuilder(), elem); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported arrow builder %T", b)
	}
	return nil
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, fmt.Errorf("unexpected number value of type %T", value)
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return 0, fmt.Errorf("unexpected number value of type %T", value)
}

// toText renders strings as is and everything else, JSON values included, as
// JSON text.
func toText(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
