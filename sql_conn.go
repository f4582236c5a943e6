package gopinotdb

import (
	"context"
	"database/sql/driver"
)

// pinotConn is the database/sql connection. It runs every query on a fresh
// cursor of the wrapped Connection.
type pinotConn struct {
	conn *Connection
}

func (pc *pinotConn) interpolateArgs(query string, args []driver.NamedValue) (string, error) {
	named, positional := bindNamedValues(args)
	return interpolate(query, named, positional)
}

func (pc *pinotConn) Begin() (driver.Tx, error) {
	return pc.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx returns a transaction whose Commit and Rollback do nothing.
func (pc *pinotConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	logger.WithContext(ctx).Debugf("BeginTx: %+v", opts)
	if pc.conn.IsClosed() {
		return nil, driver.ErrBadConn
	}
	return &pinotTx{pc}, nil
}

func (pc *pinotConn) Close() error {
	logger.Debug("Close")
	if pc.conn.IsClosed() {
		return nil
	}
	return pc.conn.Close()
}

func (pc *pinotConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	logger.WithContext(ctx).Debug("Prepare")
	if pc.conn.IsClosed() {
		return nil, driver.ErrBadConn
	}
	return &pinotStmt{pc: pc, query: query}, nil
}

func (pc *pinotConn) Prepare(query string) (driver.Stmt, error) {
	return pc.PrepareContext(context.Background(), query)
}

func (pc *pinotConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	logger.WithContext(ctx).Debugf("ExecContext: %#v, %v", query, args)
	cursor, err := pc.run(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()
	return &pinotResult{stats: cursor.Stats()}, nil
}

func (pc *pinotConn) Exec(query string, args []driver.Value) (driver.Result, error) {
	return pc.ExecContext(context.Background(), query, toNamedValues(args))
}

func (pc *pinotConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	logger.WithContext(ctx).Debugf("QueryContext: %#v, %v", query, args)
	if isAsyncMode(ctx) {
		sqlText, err := pc.interpolateArgs(query, args)
		if err != nil {
			return nil, err
		}
		cursor, err := pc.cursor()
		if err != nil {
			return nil, err
		}
		return newAsyncRows(cursor, cursor.executeAsync(ctx, sqlText)), nil
	}
	cursor, err := pc.run(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return newRows(cursor), nil
}

func (pc *pinotConn) Query(query string, args []driver.Value) (driver.Rows, error) {
	return pc.QueryContext(context.Background(), query, toNamedValues(args))
}

// run interpolates the arguments and executes the query on a new cursor.
func (pc *pinotConn) run(ctx context.Context, query string, args []driver.NamedValue) (*Cursor, error) {
	sqlText, err := pc.interpolateArgs(query, args)
	if err != nil {
		return nil, err
	}
	cursor, err := pc.cursor()
	if err != nil {
		return nil, err
	}
	if err = cursor.execute(ctx, sqlText); err != nil {
		cursor.Close()
		return nil, err
	}
	return cursor, nil
}

func (pc *pinotConn) cursor() (*Cursor, error) {
	cursor, err := pc.conn.Cursor()
	if err != nil {
		return nil, driver.ErrBadConn
	}
	return cursor, nil
}

func (pc *pinotConn) Ping(ctx context.Context) error {
	logger.WithContext(ctx).Debug("Ping")
	if pc.conn.IsClosed() {
		return driver.ErrBadConn
	}
	return pc.conn.Ping(ctx)
}

// CheckNamedValue accepts every value. Values are rendered as SQL literals
// when the query is interpolated, so slices become IN lists.
func (pc *pinotConn) CheckNamedValue(nv *driver.NamedValue) error {
	return nil
}

// ResetSession discards connections whose Connection was closed.
func (pc *pinotConn) ResetSession(ctx context.Context) error {
	if pc.conn.IsClosed() {
		return driver.ErrBadConn
	}
	return nil
}

func (pc *pinotConn) IsValid() bool {
	return !pc.conn.IsClosed()
}
