package query

// BrokerResponse is the JSON document returned by the broker query endpoint.
// Only one of ResultTable, SelectionResults or AggregationResults is set,
// depending on the response format version of the broker.
type BrokerResponse struct {
	ResultTable        *ResultTable        `json:"resultTable,omitempty"`
	SelectionResults   *SelectionResults   `json:"selectionResults,omitempty"`
	AggregationResults []AggregationResult `json:"aggregationResults,omitempty"`
	Exceptions         []QueryException    `json:"exceptions,omitempty"`

	NumServersQueried   *int `json:"numServersQueried,omitempty"`
	NumServersResponded *int `json:"numServersResponded,omitempty"`

	NumDocsScanned              int64  `json:"numDocsScanned"`
	TotalDocs                   int64  `json:"totalDocs"`
	TimeUsedMs                  int64  `json:"timeUsedMs"`
	NumSegmentsQueried          int64  `json:"numSegmentsQueried"`
	NumSegmentsProcessed        int64  `json:"numSegmentsProcessed"`
	NumSegmentsMatched          int64  `json:"numSegmentsMatched"`
	NumEntriesScannedInFilter   int64  `json:"numEntriesScannedInFilter"`
	NumEntriesScannedPostFilter int64  `json:"numEntriesScannedPostFilter"`
	NumGroupsLimitReached       bool   `json:"numGroupsLimitReached"`
	RequestID                   string `json:"requestId,omitempty"`
}

// ResultTable is the tabular result of current brokers.
type ResultTable struct {
	DataSchema DataSchema `json:"dataSchema"`
	Rows       [][]any    `json:"rows"`
}

// DataSchema lists the column names and their wire type tags, in row order.
type DataSchema struct {
	ColumnNames     []string `json:"columnNames"`
	ColumnDataTypes []string `json:"columnDataTypes"`
}

// SelectionResults is the legacy flat selection result. It carries no types.
type SelectionResults struct {
	Columns []string `json:"columns"`
	Results [][]any  `json:"results"`
}

// AggregationResult is the legacy result of one aggregation function.
// Value is set for a global aggregation, GroupByResult for a grouped one.
type AggregationResult struct {
	Function       string          `json:"function"`
	Value          any             `json:"value,omitempty"`
	GroupByColumns []string        `json:"groupByColumns,omitempty"`
	GroupByResult  []GroupByResult `json:"groupByResult,omitempty"`
}

// GroupByResult is one group of a legacy grouped aggregation.
type GroupByResult struct {
	Group []any `json:"group"`
	Value any   `json:"value"`
}

// QueryException is an exception reported by the broker or a server.
type QueryException struct {
	ErrorCode *int   `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}
