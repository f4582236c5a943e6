package gopinotdb

import (
	"context"
)

// Cursor runs queries and holds the result of the last one. A cursor is not
// safe for concurrent use; run concurrent queries on separate cursors.
type Cursor struct {
	conn    *Connection
	rest    *pinotRestful
	checker *responseChecker

	// ArraySize is the number of rows FetchMany returns by default.
	ArraySize int

	closed      bool
	description []ColumnDescription
	rowCount    int
	// results is nil until a query succeeds, and drained by the fetch methods.
	results [][]any
	stats   *Stats
}

func newCursor(conn *Connection, rest *pinotRestful, checker *responseChecker) *Cursor {
	return &Cursor{
		conn:      conn,
		rest:      rest,
		checker:   checker,
		ArraySize: 1,
		rowCount:  -1,
	}
}

// Execute interpolates params into query and runs it, replacing the previous
// result of the cursor.
func (cur *Cursor) Execute(ctx context.Context, query string, params map[string]any) error {
	if cur.closed {
		return errCursorClosed()
	}
	sqlText, err := Interpolate(query, params)
	if err != nil {
		return err
	}
	return cur.execute(ctx, sqlText)
}

// ExecuteMany is not supported.
func (cur *Cursor) ExecuteMany(ctx context.Context, query string, params []map[string]any) error {
	if cur.closed {
		return errCursorClosed()
	}
	return errExecuteMany()
}

func (cur *Cursor) execute(ctx context.Context, sqlText string) error {
	if cur.closed {
		return errCursorClosed()
	}
	cur.reset()

	requestID := getOrGenerateRequestIDFromContext(ctx)
	ctx = context.WithValue(ctx, PinotRequestIDKey, requestID.String())
	if cur.rest.cfg.Username != "" {
		ctx = context.WithValue(ctx, PinotUserKey, cur.rest.cfg.Username)
	}
	sqlText = cur.rest.finalSQL(sqlText)
	logger.WithContext(ctx).Debugf("Exec: %v", sqlText)

	statusCode, body, err := cur.rest.postQuery(ctx, requestID.String(), sqlText)
	if err != nil {
		logger.WithContext(ctx).Errorf("request to %v failed: %v", cur.rest.cfg.brokerURL(), err)
		return err
	}
	resp, rs, err := processResponse(sqlText, cur.rest.cfg.brokerURL(), statusCode, body, cur.checker)
	if err != nil {
		logger.WithContext(ctx).Errorf("query failed: %v", err)
		return err
	}
	cur.description = rs.description
	cur.results = rs.rows
	cur.rowCount = len(rs.rows)
	cur.stats = newStats(resp, requestID)
	logger.WithContext(ctx).Debugf("query returned %v rows in %v ms", cur.rowCount, resp.TimeUsedMs)
	return nil
}

func (cur *Cursor) reset() {
	cur.description = nil
	cur.results = nil
	cur.rowCount = -1
	cur.stats = nil
}

func (cur *Cursor) checkResult() error {
	if cur.closed {
		return errCursorClosed()
	}
	if cur.results == nil {
		return errNotExecuted()
	}
	return nil
}

// FetchOne returns the next row, or nil when no rows remain.
func (cur *Cursor) FetchOne() ([]any, error) {
	if err := cur.checkResult(); err != nil {
		return nil, err
	}
	if len(cur.results) == 0 {
		return nil, nil
	}
	row := cur.results[0]
	cur.results = cur.results[1:]
	return row, nil
}

// FetchMany returns up to size rows. A size of 0 or less uses ArraySize. An
// empty slice is returned when no rows remain.
func (cur *Cursor) FetchMany(size int) ([][]any, error) {
	if err := cur.checkResult(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = cur.ArraySize
	}
	if size <= 0 {
		size = 1
	}
	size = min(size, len(cur.results))
	rows := cur.results[:size:size]
	cur.results = cur.results[size:]
	return rows, nil
}

// FetchAll returns all remaining rows.
func (cur *Cursor) FetchAll() ([][]any, error) {
	if err := cur.checkResult(); err != nil {
		return nil, err
	}
	rows := cur.results
	cur.results = [][]any{}
	return rows, nil
}

// Description describes the columns of the last result. It is nil before a
// query ran and for results without columns.
func (cur *Cursor) Description() []ColumnDescription {
	return cur.description
}

// Columns returns the column names of the last result.
func (cur *Cursor) Columns() []string {
	names := make([]string, len(cur.description))
	for i, desc := range cur.description {
		names[i] = desc.Name
	}
	return names
}

// RowCount is the number of rows of the last result, or -1 before a query ran.
func (cur *Cursor) RowCount() int {
	return cur.rowCount
}

// Stats returns the broker statistics of the last query, or nil.
func (cur *Cursor) Stats() *Stats {
	return cur.stats
}

// Close closes the cursor. Closing a closed cursor is an error.
func (cur *Cursor) Close() error {
	if cur.closed {
		return errCursorClosed()
	}
	cur.closed = true
	cur.results = nil
	if cur.conn != nil {
		cur.conn.forget(cur)
	}
	return nil
}

// IsClosed reports whether Close was called.
func (cur *Cursor) IsClosed() bool {
	return cur.closed
}
