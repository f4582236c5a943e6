package arrowbatches

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/pinot-dbapi/gopinotdb"
)

// PinotTypeMetadataKey is the field metadata key holding the broker type tag
// of a column. Legacy responses carry no tag.
const PinotTypeMetadataKey = "pinotType"

// Schema returns the Arrow schema of a result with the given description.
func Schema(description []gopinotdb.ColumnDescription) *arrow.Schema {
	fields := make([]arrow.Field, len(description))
	for i, desc := range description {
		fields[i] = arrow.Field{
			Name:     desc.Name,
			Type:     arrowType(desc),
			Nullable: true,
		}
		if desc.WireType != "" {
			fields[i].Metadata = arrow.NewMetadata([]string{PinotTypeMetadataKey}, []string{desc.WireType})
		}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(desc gopinotdb.ColumnDescription) arrow.DataType {
	var t arrow.DataType
	switch desc.Type {
	case gopinotdb.TypeNumber:
		if isIntegerTag(desc.WireType) {
			t = arrow.PrimitiveTypes.Int64
		} else {
			t = arrow.PrimitiveTypes.Float64
		}
	case gopinotdb.TypeBoolean:
		t = arrow.FixedWidthTypes.Boolean
	case gopinotdb.TypeTimestamp:
		t = &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	default:
		t = arrow.BinaryTypes.String
	}
	if desc.IsArray {
		return arrow.ListOf(t)
	}
	return t
}

// isIntegerTag reports whether a broker type tag holds integers. Untyped
// number columns may mix integers and floats, so they are float64.
func isIntegerTag(tag string) bool {
	prefix, _, _ := strings.Cut(strings.ToUpper(tag), "_")
	return prefix == "INT" || prefix == "LONG"
}
