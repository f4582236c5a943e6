package dialect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pinot-dbapi/gopinotdb"
	"github.com/samber/lo"
)

// Field types of the columns of a Pinot schema.
const (
	FieldTypeDimension = "DIMENSION"
	FieldTypeMetric    = "METRIC"
	FieldTypeDateTime  = "DATE_TIME"
)

// Column describes a table column as reported by the controller.
type Column struct {
	Name string
	// Type is the SQL type of the column, ARRAY for multi-value columns.
	Type string
	// ElementType is the SQL type of the values of a multi-value column.
	ElementType string
	FieldType   string
	Nullable    bool
	// Default is the default null value of the column, nil when it is "null".
	Default *string
}

// PrimaryKey is the primary key constraint of a table. Pinot reports none.
type PrimaryKey struct {
	Name              string
	ConstrainedColumn []string
}

type tablesResponse struct {
	Tables []string `json:"tables"`
}

type fieldSpec struct {
	Name             string          `json:"name"`
	DataType         string          `json:"dataType"`
	SingleValueField *bool           `json:"singleValueField,omitempty"`
	DefaultNullValue json.RawMessage `json:"defaultNullValue,omitempty"`
}

type schemaResponse struct {
	SchemaName          string      `json:"schemaName"`
	DimensionFieldSpecs []fieldSpec `json:"dimensionFieldSpecs"`
	MetricFieldSpecs    []fieldSpec `json:"metricFieldSpecs"`
	DateTimeFieldSpecs  []fieldSpec `json:"dateTimeFieldSpecs"`
}

// Inspector reads table metadata from the Pinot controller.
type Inspector struct {
	conn       *gopinotdb.Connection
	controller *url.URL
}

func (in *Inspector) getJSON(ctx context.Context, v any, elem ...string) error {
	endpoint := in.controller.JoinPath(elem...).String()
	statusCode, body, err := in.conn.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if statusCode != http.StatusOK {
		return fmt.Errorf("controller request %v returned HTTP status %d: %s", endpoint, statusCode, body)
	}
	if err = json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid controller response from %v: %w", endpoint, err)
	}
	return nil
}

// GetSchemaNames returns the names of the schemas known to the controller.
func (in *Inspector) GetSchemaNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := in.getJSON(ctx, &names, "schemas"); err != nil {
		return nil, err
	}
	return names, nil
}

// GetTableNames returns the names of the tables known to the controller.
func (in *Inspector) GetTableNames(ctx context.Context) ([]string, error) {
	var resp tablesResponse
	if err := in.getJSON(ctx, &resp, "tables"); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// HasTable reports whether the controller knows the table.
func (in *Inspector) HasTable(ctx context.Context, table string) (bool, error) {
	tables, err := in.GetTableNames(ctx)
	if err != nil {
		return false, err
	}
	return lo.Contains(tables, table), nil
}

// GetColumns returns the dimension, metric and date time columns of a table,
// in that order.
func (in *Inspector) GetColumns(ctx context.Context, table string) ([]Column, error) {
	var schema schemaResponse
	if err := in.getJSON(ctx, &schema, "tables", table, "schema"); err != nil {
		return nil, err
	}
	columns := make([]Column, 0, len(schema.DimensionFieldSpecs)+len(schema.MetricFieldSpecs)+len(schema.DateTimeFieldSpecs))
	for _, group := range []struct {
		fieldType string
		specs     []fieldSpec
	}{
		{FieldTypeDimension, schema.DimensionFieldSpecs},
		{FieldTypeMetric, schema.MetricFieldSpecs},
		{FieldTypeDateTime, schema.DateTimeFieldSpecs},
	} {
		columns = append(columns, lo.Map(group.specs, func(spec fieldSpec, _ int) Column {
			return spec.column(group.fieldType)
		})...)
	}
	return columns, nil
}

func (spec fieldSpec) column(fieldType string) Column {
	column := Column{
		Name:      spec.Name,
		Type:      sqlType(spec.DataType),
		FieldType: fieldType,
		Nullable:  true,
		Default:   defaultValue(spec.DefaultNullValue),
	}
	if spec.SingleValueField != nil && !*spec.SingleValueField {
		column.ElementType = column.Type
		column.Type = "ARRAY"
	}
	return column
}

// defaultValue renders a default null value as text. The string "null" and
// a missing value mean no default.
func defaultValue(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	if text == "null" {
		return nil
	}
	return &text
}

// GetViewNames returns no views; Pinot has none.
func (in *Inspector) GetViewNames(ctx context.Context) ([]string, error) {
	return []string{}, nil
}

// GetPrimaryKey returns an empty constraint.
func (in *Inspector) GetPrimaryKey(ctx context.Context, table string) (PrimaryKey, error) {
	return PrimaryKey{ConstrainedColumn: []string{}}, nil
}

// GetForeignKeys returns no foreign keys.
func (in *Inspector) GetForeignKeys(ctx context.Context, table string) ([]string, error) {
	return []string{}, nil
}

// GetIndexes returns no indexes.
func (in *Inspector) GetIndexes(ctx context.Context, table string) ([]string, error) {
	return []string{}, nil
}
