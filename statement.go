package gopinotdb

import (
	"context"
	"database/sql/driver"
)

// PinotStmt is the statement returned by PrepareContext. Pinot has no server
// side statements; the query text is interpolated on every execution.
type PinotStmt interface {
	GetQuery() string
}

type pinotStmt struct {
	pc    *pinotConn
	query string
}

func (stmt *pinotStmt) Close() error {
	return nil
}

// NumInput returns -1 since placeholders are checked during interpolation.
func (stmt *pinotStmt) NumInput() int {
	return -1
}

func (stmt *pinotStmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	logger.WithContext(ctx).Debugf("Stmt.ExecContext: %#v", stmt.query)
	return stmt.pc.ExecContext(ctx, stmt.query, args)
}

func (stmt *pinotStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	logger.WithContext(ctx).Debugf("Stmt.QueryContext: %#v", stmt.query)
	return stmt.pc.QueryContext(ctx, stmt.query, args)
}

func (stmt *pinotStmt) Exec(args []driver.Value) (driver.Result, error) {
	return stmt.ExecContext(context.Background(), toNamedValues(args))
}

func (stmt *pinotStmt) Query(args []driver.Value) (driver.Rows, error) {
	return stmt.QueryContext(context.Background(), toNamedValues(args))
}

func (stmt *pinotStmt) GetQuery() string {
	return stmt.query
}
