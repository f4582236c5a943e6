package dialect

import (
	"strings"

	"github.com/pinot-dbapi/gopinotdb"
)

// pinotColumnTypes maps generic SQL type names to the Pinot column type used
// when generating DDL. Pinot stores booleans, dates and timestamps as LONG.
var pinotColumnTypes = map[string]string{
	"REAL":      "DOUBLE",
	"FLOAT":     "DOUBLE",
	"DOUBLE":    "DOUBLE",
	"NUMERIC":   "LONG",
	"DECIMAL":   "LONG",
	"INTEGER":   "LONG",
	"SMALLINT":  "LONG",
	"BIGINT":    "LONG",
	"BOOLEAN":   "LONG",
	"TIMESTAMP": "LONG",
	"DATE":      "LONG",
	"CHAR":      "STRING",
	"NCHAR":     "STRING",
	"VARCHAR":   "STRING",
	"NVARCHAR":  "STRING",
	"TEXT":      "STRING",
	"BINARY":    "BYTES",
	"VARBINARY": "BYTES",
	"DATETIME":  "TIMESTAMP",
}

// CompileType returns the Pinot type for a generic SQL type name such as
// "VARCHAR" or "varchar(255)". TIME, BLOB, CLOB, NCLOB and unknown types are
// not supported.
func CompileType(sqlType string) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if pinotType, ok := pinotColumnTypes[name]; ok {
		return pinotType, nil
	}
	return "", gopinotdb.ErrUnsupportedType(name)
}

// sqlTypes maps the data types of controller field specs to SQL type names.
var sqlTypes = map[string]string{
	"INT":         "INTEGER",
	"LONG":        "BIGINT",
	"FLOAT":       "FLOAT",
	"DOUBLE":      "DOUBLE",
	"BIG_DECIMAL": "DECIMAL",
	"BOOLEAN":     "BOOLEAN",
	"TIMESTAMP":   "TIMESTAMP",
	"STRING":      "VARCHAR",
	"JSON":        "JSON",
	"BYTES":       "VARBINARY",
}

// sqlType returns the SQL type of a field spec data type. Unknown types are
// reported as VARCHAR.
func sqlType(dataType string) string {
	if t, ok := sqlTypes[strings.ToUpper(dataType)]; ok {
		return t
	}
	return "VARCHAR"
}
