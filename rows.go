package gopinotdb

import (
	"database/sql/driver"
	"io"
	"reflect"
)

// PinotRows provides the details of a query result to callers of
// database/sql through sql.Conn.Raw or driver.Rows.
type PinotRows interface {
	GetStats() *Stats
	GetDescription() []ColumnDescription
}

// pinotRows drains a Cursor. In async mode the rows first wait for the
// query to finish.
type pinotRows struct {
	cursor     *Cursor
	errChannel <-chan error
	err        error
}

func newRows(cursor *Cursor) *pinotRows {
	return &pinotRows{cursor: cursor}
}

func newAsyncRows(cursor *Cursor, errChannel <-chan error) *pinotRows {
	return &pinotRows{cursor: cursor, errChannel: errChannel}
}

func (rows *pinotRows) waitForAsyncQueryStatus() error {
	if rows.errChannel != nil {
		rows.err = <-rows.errChannel
		rows.errChannel = nil
	}
	return rows.err
}

func (rows *pinotRows) Close() error {
	logger.Debug("Rows.Close")
	_ = rows.waitForAsyncQueryStatus()
	if rows.cursor.IsClosed() {
		return nil
	}
	return rows.cursor.Close()
}

func (rows *pinotRows) Columns() []string {
	if err := rows.waitForAsyncQueryStatus(); err != nil {
		return make([]string, 0)
	}
	return rows.cursor.Columns()
}

func (rows *pinotRows) description(index int) ColumnDescription {
	if err := rows.waitForAsyncQueryStatus(); err != nil {
		return ColumnDescription{}
	}
	return rows.cursor.Description()[index]
}

// ColumnTypeDatabaseTypeName returns the wire type tag of the column, or the
// inferred type for results without tags.
func (rows *pinotRows) ColumnTypeDatabaseTypeName(index int) string {
	desc := rows.description(index)
	if desc.WireType != "" {
		return desc.WireType
	}
	if desc.IsArray {
		return desc.Type.String() + arraySuffix
	}
	return desc.Type.String()
}

// ColumnTypeNullable reports every column as nullable.
func (rows *pinotRows) ColumnTypeNullable(index int) (nullable, ok bool) {
	return true, true
}

func (rows *pinotRows) ColumnTypeScanType(index int) reflect.Type {
	return pinotTypeToGo(rows.description(index))
}

func (rows *pinotRows) Next(dest []driver.Value) error {
	if err := rows.waitForAsyncQueryStatus(); err != nil {
		return err
	}
	row, err := rows.cursor.FetchOne()
	if err != nil {
		return err
	}
	if row == nil {
		return io.EOF
	}
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		}
	}
	return nil
}

func (rows *pinotRows) HasNextResultSet() bool {
	return false
}

func (rows *pinotRows) NextResultSet() error {
	return io.EOF
}

func (rows *pinotRows) GetStats() *Stats {
	if err := rows.waitForAsyncQueryStatus(); err != nil {
		return nil
	}
	return rows.cursor.Stats()
}

func (rows *pinotRows) GetDescription() []ColumnDescription {
	if err := rows.waitForAsyncQueryStatus(); err != nil {
		return nil
	}
	return rows.cursor.Description()
}
