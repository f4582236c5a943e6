package gopinotdb

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pinot-dbapi/gopinotdb/internal/query"
	"github.com/samber/lo"
)

// responseChecker decides whether a broker response is a failure.
type responseChecker struct {
	ignoredErrorCodes         []int
	acceptableRespondFraction float64
}

func newResponseChecker(cfg *Config) *responseChecker {
	fraction := defaultAcceptableRespondFraction
	if cfg.AcceptableRespondFraction != nil {
		fraction = *cfg.AcceptableRespondFraction
	}
	return &responseChecker{
		ignoredErrorCodes:         cfg.IgnoreExceptionErrorCodes,
		acceptableRespondFraction: fraction,
	}
}

// liveExceptions drops the exceptions whose error code is ignored. An
// exception without an error code is always kept.
func (rc *responseChecker) liveExceptions(exceptions []query.QueryException) []query.QueryException {
	return lo.Filter(exceptions, func(e query.QueryException, _ int) bool {
		return e.ErrorCode == nil || !lo.Contains(rc.ignoredErrorCodes, *e.ErrorCode)
	})
}

func (rc *responseChecker) checkExceptions(sqlText string, exceptions []query.QueryException) error {
	live := rc.liveExceptions(exceptions)
	if len(live) == 0 {
		return nil
	}
	details := lo.Map(live, func(e query.QueryException, _ int) string {
		encoded, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return e.Message
		}
		return string(encoded)
	})
	return &PinotError{
		Number:  ErrCodeQueryException,
		Kind:    KindDatabase,
		Message: errMsgQueryException,
		Query:   sqlText,
		Detail:  strings.Join(details, "\n"),
	}
}

// requiredResponders returns how many servers must respond, and the
// responded count to compare with it.
//
//   - fraction <= -1: every queried server must respond
//   - -1 < fraction < 1: the fraction of queried servers, truncated
//   - fraction >= 1: an absolute number of servers
//
// Unknown counts (negative) always fail.
func requiredResponders(queried, responded int, fraction float64) (needed float64, got int) {
	switch {
	case queried < 0 || responded < 0:
		return -1, -1
	case fraction <= -1:
		return float64(queried), responded
	case fraction < 1:
		return math.Trunc(fraction * float64(queried)), responded
	}
	return fraction, responded
}

// sufficientResponded reports whether enough servers answered. A fraction of
// 0 disables the check.
func sufficientResponded(queried, responded int, fraction float64) bool {
	if fraction == 0 {
		return true
	}
	needed, got := requiredResponders(queried, responded, fraction)
	return got >= 0 && float64(got) >= needed
}

func (rc *responseChecker) checkSufficientResponded(sqlText string, queried, responded int) error {
	if sufficientResponded(queried, responded, rc.acceptableRespondFraction) {
		return nil
	}
	needed, got := requiredResponders(queried, responded, rc.acceptableRespondFraction)
	return &PinotError{
		Number:      ErrCodeInsufficientServers,
		Kind:        KindDatabase,
		Message:     errMsgInsufficientServers,
		MessageArgs: []interface{}{queried, got, needed},
		Query:       sqlText,
	}
}
