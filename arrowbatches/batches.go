// Package arrowbatches exports Pinot query results as Apache Arrow records.
package arrowbatches

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pinot-dbapi/gopinotdb"
)

// FromCursor drains the remaining rows of an executed cursor into a single
// record.
func FromCursor(mem memory.Allocator, cursor *gopinotdb.Cursor) (arrow.Record, error) {
	rows, err := cursor.FetchAll()
	if err != nil {
		return nil, err
	}
	return ToRecord(mem, cursor.Description(), rows)
}

// Batches drains the remaining rows of an executed cursor into records of at
// most batchSize rows. A batchSize of 0 or less uses the cursor ArraySize.
// The caller must release every record.
func Batches(mem memory.Allocator, cursor *gopinotdb.Cursor, batchSize int) ([]arrow.Record, error) {
	records := make([]arrow.Record, 0)
	release := func() {
		for _, rec := range records {
			rec.Release()
		}
	}
	for {
		rows, err := cursor.FetchMany(batchSize)
		if err != nil {
			release()
			return nil, err
		}
		if len(rows) == 0 {
			return records, nil
		}
		rec, err := ToRecord(mem, cursor.Description(), rows)
		if err != nil {
			release()
			return nil, err
		}
		records = append(records, rec)
	}
}

// CountRows returns the total number of rows of records.
func CountRows(records []arrow.Record) int64 {
	var count int64
	for _, rec := range records {
		count += rec.NumRows()
	}
	return count
}
