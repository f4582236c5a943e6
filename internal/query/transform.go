package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Shape identifies which result format a broker response carries.
type Shape int

const (
	// ShapeEmpty is a response with no recognized result.
	ShapeEmpty Shape = iota
	// ShapeTabular is the resultTable format.
	ShapeTabular
	// ShapeSelection is the legacy selectionResults format.
	ShapeSelection
	// ShapeAggregation is the legacy aggregationResults format.
	ShapeAggregation
)

func (s Shape) String() string {
	switch s {
	case ShapeTabular:
		return "tabular"
	case ShapeSelection:
		return "selection"
	case ShapeAggregation:
		return "aggregation"
	}
	return "empty"
}

var errTrailingData = errors.New("unexpected data after JSON value")

// Decode parses a broker response. Numbers are kept as json.Number so
// integers survive without going through float64.
func Decode(body []byte) (*BrokerResponse, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var resp BrokerResponse
	if err := decoder.Decode(&resp); err != nil {
		return nil, err
	}
	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return &resp, nil
}

// Shape returns the result format of the response. Formats are tried in
// priority order and the first one present wins.
func (r *BrokerResponse) Shape() Shape {
	switch {
	case r.ResultTable != nil:
		return ShapeTabular
	case r.SelectionResults != nil:
		return ShapeSelection
	case len(r.AggregationResults) > 0:
		return ShapeAggregation
	}
	return ShapeEmpty
}

// ServersQueried returns numServersQueried, or -1 when the broker did not report it.
func (r *BrokerResponse) ServersQueried() int {
	if r.NumServersQueried == nil {
		return -1
	}
	return *r.NumServersQueried
}

// ServersResponded returns numServersResponded, or -1 when the broker did not report it.
func (r *BrokerResponse) ServersResponded() int {
	if r.NumServersResponded == nil {
		return -1
	}
	return *r.NumServersResponded
}

// IsGrouped reports whether the aggregation carries group-by results.
func (a *AggregationResult) IsGrouped() bool {
	return a.GroupByResult != nil || (a.Value == nil && len(a.GroupByColumns) > 0)
}
