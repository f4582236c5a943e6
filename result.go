package gopinotdb

import (
	"github.com/google/uuid"
	"github.com/pinot-dbapi/gopinotdb/internal/query"
)

// Stats are the execution statistics the broker reports with a result.
type Stats struct {
	// RequestID is the id the driver sent with the request.
	RequestID string
	// BrokerRequestID is the id the broker assigned to the query, if reported.
	BrokerRequestID string

	NumServersQueried           int
	NumServersResponded         int
	NumDocsScanned              int64
	TotalDocs                   int64
	TimeUsedMs                  int64
	NumSegmentsQueried          int64
	NumSegmentsProcessed        int64
	NumSegmentsMatched          int64
	NumEntriesScannedInFilter   int64
	NumEntriesScannedPostFilter int64
	NumGroupsLimitReached       bool
}

func newStats(resp *query.BrokerResponse, requestID uuid.UUID) *Stats {
	return &Stats{
		RequestID:                   requestID.String(),
		BrokerRequestID:             resp.RequestID,
		NumServersQueried:           resp.ServersQueried(),
		NumServersResponded:         resp.ServersResponded(),
		NumDocsScanned:              resp.NumDocsScanned,
		TotalDocs:                   resp.TotalDocs,
		TimeUsedMs:                  resp.TimeUsedMs,
		NumSegmentsQueried:          resp.NumSegmentsQueried,
		NumSegmentsProcessed:        resp.NumSegmentsProcessed,
		NumSegmentsMatched:          resp.NumSegmentsMatched,
		NumEntriesScannedInFilter:   resp.NumEntriesScannedInFilter,
		NumEntriesScannedPostFilter: resp.NumEntriesScannedPostFilter,
		NumGroupsLimitReached:       resp.NumGroupsLimitReached,
	}
}

// PinotResult provides the statistics of an executed statement.
type PinotResult interface {
	GetStats() *Stats
}

// pinotResult is returned by Exec. Pinot has no DML, so no row is ever affected.
type pinotResult struct {
	stats *Stats
}

func (res *pinotResult) LastInsertId() (int64, error) {
	return 0, errNoLastInsertID()
}

func (res *pinotResult) RowsAffected() (int64, error) {
	return 0, nil
}

func (res *pinotResult) GetStats() *Stats {
	return res.stats
}
