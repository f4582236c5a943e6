package gopinotdb

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/pinot-dbapi/gopinotdb/internal/query"
)

// resultSet is a fully materialized query result.
type resultSet struct {
	description []ColumnDescription
	rows        [][]any
}

func emptyResultSet() *resultSet {
	return &resultSet{rows: [][]any{}}
}

// processResponse turns a broker reply into a result set. The checks run in a
// fixed order: body parsing, HTTP status, query exceptions, server accounting
// and finally the result shape.
func processResponse(sqlText, url string, statusCode int, body []byte, checker *responseChecker) (*query.BrokerResponse, *resultSet, error) {
	resp, err := query.Decode(body)
	if err != nil {
		return nil, nil, (&PinotError{
			Number:      ErrCodeInvalidJSONResponse,
			Kind:        KindDatabase,
			Message:     errMsgInvalidJSONResponse,
			MessageArgs: []interface{}{url, string(body)},
			Query:       sqlText,
		}).withCause(err)
	}
	if statusCode != http.StatusOK {
		return nil, nil, &PinotError{
			Number:      ErrCodeHTTPStatus,
			Kind:        KindProgramming,
			Message:     errMsgHTTPStatus,
			MessageArgs: []interface{}{statusCode},
			Query:       sqlText,
			Detail:      prettyJSON(body),
		}
	}
	if err = checker.checkExceptions(sqlText, resp.Exceptions); err != nil {
		return nil, nil, err
	}
	if err = checker.checkSufficientResponded(sqlText, resp.ServersQueried(), resp.ServersResponded()); err != nil {
		return nil, nil, err
	}
	rs, err := normalizeResponse(resp)
	if err != nil {
		if pe, ok := err.(*PinotError); ok && pe.Query == "" {
			pe.Query = sqlText
		}
		return nil, nil, err
	}
	return resp, rs, nil
}

// normalizeResponse dispatches on the response shape.
func normalizeResponse(resp *query.BrokerResponse) (*resultSet, error) {
	switch resp.Shape() {
	case query.ShapeTabular:
		return normalizeTabular(resp.ResultTable)
	case query.ShapeSelection:
		return normalizeSelection(resp.SelectionResults)
	case query.ShapeAggregation:
		return normalizeAggregation(resp.AggregationResults)
	}
	return emptyResultSet(), nil
}

func normalizeTabular(table *query.ResultTable) (*resultSet, error) {
	names := table.DataSchema.ColumnNames
	tags := table.DataSchema.ColumnDataTypes
	rows := table.Rows
	if len(names) == 0 {
		if len(rows) > 0 {
			return nil, dataError(ErrCodeMissingColumns, errMsgMissingColumns)
		}
		return emptyResultSet(), nil
	}
	if rows == nil {
		rows = [][]any{}
	}
	if err := checkRowArity(rows, len(names)); err != nil {
		return nil, err
	}

	var description []ColumnDescription
	switch len(tags) {
	case len(names):
		description = describeTypedColumns(names, tags)
	case 0:
		var err error
		if description, err = describeUntypedColumns(names, rows); err != nil {
			return nil, err
		}
	default:
		return nil, dataError(ErrCodeMissingColumns, errMsgColumnTypesMismatch, len(tags), len(names))
	}
	if err := convertRows(description, rows); err != nil {
		return nil, err
	}
	return &resultSet{description: description, rows: rows}, nil
}

func normalizeSelection(selection *query.SelectionResults) (*resultSet, error) {
	rows := selection.Results
	if len(selection.Columns) == 0 {
		if len(rows) > 0 {
			return nil, dataError(ErrCodeMissingColumns, errMsgMissingColumns)
		}
		return emptyResultSet(), nil
	}
	if rows == nil {
		rows = [][]any{}
	}
	return untypedResultSet(selection.Columns, rows)
}

// normalizeAggregation joins the results of every aggregation function on
// their group values, producing one row per group with one cell per function.
// All functions must be grouped by the same columns.
func normalizeAggregation(results []query.AggregationResult) (*resultSet, error) {
	groupByColumns := results[0].GroupByColumns
	metrics := make([]string, len(results))
	var groupKeys []string
	groups := make(map[string][]any)
	cells := make(map[string]map[string]any)

	put := func(group []any, metric string, value any) error {
		encoded, err := json.Marshal(group)
		if err != nil {
			return err
		}
		key := string(encoded)
		if _, ok := groups[key]; !ok {
			groupKeys = append(groupKeys, key)
			groups[key] = group
			cells[key] = make(map[string]any)
		}
		cells[key][metric] = value
		return nil
	}

	for i, result := range results {
		metrics[i] = result.Function
		if !slices.Equal(groupByColumns, result.GroupByColumns) {
			return nil, dataError(ErrCodeGroupByMismatch, errMsgGroupByMismatch, groupByColumns, result.GroupByColumns)
		}
		if !result.IsGrouped() {
			if len(groupByColumns) > 0 {
				return nil, dataError(ErrCodeMixedAggregation, errMsgMixedAggregation, result.Function, groupByColumns)
			}
			if err := put([]any{}, result.Function, result.Value); err != nil {
				return nil, err
			}
			continue
		}
		for _, groupResult := range result.GroupByResult {
			group, err := alignGroup(groupResult.Group, len(groupByColumns))
			if err != nil {
				return nil, err
			}
			if err = put(group, result.Function, groupResult.Value); err != nil {
				return nil, err
			}
		}
	}

	rows := make([][]any, 0, len(groupKeys))
	for _, key := range groupKeys {
		row := make([]any, 0, len(groupByColumns)+len(metrics))
		row = append(row, groups[key]...)
		for _, metric := range metrics {
			row = append(row, cells[key][metric])
		}
		rows = append(rows, row)
	}
	columns := append(append([]string{}, groupByColumns...), metrics...)
	return untypedResultSet(columns, rows)
}

// alignGroup fits the group values to the group-by columns. Brokers that do
// not escape the group key separator return too many values; the excess
// leading values are concatenated into the first one.
func alignGroup(group []any, columns int) ([]any, error) {
	switch {
	case len(group) == columns:
		return group, nil
	case columns == 0:
		return nil, dataError(ErrCodeMixedAggregation, errMsgTooManyTotals, len(group))
	case len(group) < columns:
		return nil, dataError(ErrCodeRowArity, errMsgGroupArity, group, len(group), columns)
	}
	excess := len(group) - columns + 1
	var first bytes.Buffer
	for _, v := range group[:excess] {
		first.WriteString(stringify(v))
	}
	aligned := make([]any, 0, columns)
	aligned = append(aligned, first.String())
	return append(aligned, group[excess:]...), nil
}

func untypedResultSet(columns []string, rows [][]any) (*resultSet, error) {
	if err := checkRowArity(rows, len(columns)); err != nil {
		return nil, err
	}
	description, err := describeUntypedColumns(columns, rows)
	if err != nil {
		return nil, err
	}
	if err = convertRows(description, rows); err != nil {
		return nil, err
	}
	return &resultSet{description: description, rows: rows}, nil
}

func checkRowArity(rows [][]any, columns int) error {
	for i, row := range rows {
		if len(row) != columns {
			return dataError(ErrCodeRowArity, ErrMsgRowArity, i, len(row), columns)
		}
	}
	return nil
}

func dataError(number int, message string, args ...interface{}) *PinotError {
	return &PinotError{
		Number:      number,
		Kind:        KindData,
		Message:     message,
		MessageArgs: args,
	}
}

func prettyJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}
