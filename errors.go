package gopinotdb

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a PinotError following the DB-API exception hierarchy.
type ErrorKind int

const (
	// KindInterface is an error related to the driver rather than the database,
	// e.g. using a closed connection or fetching before executing.
	KindInterface ErrorKind = iota + 1
	// KindProgramming is a request error, e.g. the broker answered with a non-200 status.
	KindProgramming
	// KindDatabase is an error reported by or about the database response.
	KindDatabase
	// KindData is a database error caused by data that cannot be reconciled.
	KindData
	// KindNotSupported is returned for operations Pinot does not support.
	KindNotSupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindInterface:
		return "InterfaceError"
	case KindProgramming:
		return "ProgrammingError"
	case KindDatabase:
		return "DatabaseError"
	case KindData:
		return "DataError"
	case KindNotSupported:
		return "NotSupportedError"
	}
	return "Error"
}

var (
	// ErrInterface matches every interface error through errors.Is.
	ErrInterface = errors.New("interface error")
	// ErrProgramming matches every programming error through errors.Is.
	ErrProgramming = errors.New("programming error")
	// ErrDatabase matches every database error, data errors included, through errors.Is.
	ErrDatabase = errors.New("database error")
	// ErrData matches every data error through errors.Is.
	ErrData = errors.New("data error")
	// ErrNotSupported matches every not-supported error through errors.Is.
	ErrNotSupported = errors.New("not supported")
)

// PinotError is the error type returned by the driver.
type PinotError struct {
	Number      int
	Kind        ErrorKind
	Message     string
	MessageArgs []interface{}
	// Query is the interpolated SQL the error relates to, if any.
	Query string
	// Detail is a pretty printed dump of the offending payload.
	Detail string
	cause  error
}

func (pe *PinotError) Error() string {
	message := pe.Message
	if len(pe.MessageArgs) > 0 {
		message = fmt.Sprintf(pe.Message, pe.MessageArgs...)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%06d (%s): %s", pe.Number, pe.Kind, message)
	if pe.Query != "" {
		fmt.Fprintf(&b, "\n\nQuery:\n%s", pe.Query)
	}
	if pe.Detail != "" {
		fmt.Fprintf(&b, "\n\n%s", pe.Detail)
	}
	return b.String()
}

// Unwrap returns the underlying cause, e.g. a JSON syntax error.
func (pe *PinotError) Unwrap() error {
	return pe.cause
}

// Is matches the kind sentinels. Data errors are database errors as well.
func (pe *PinotError) Is(target error) bool {
	switch target {
	case ErrInterface:
		return pe.Kind == KindInterface
	case ErrProgramming:
		return pe.Kind == KindProgramming
	case ErrDatabase:
		return pe.Kind == KindDatabase || pe.Kind == KindData
	case ErrData:
		return pe.Kind == KindData
	case ErrNotSupported:
		return pe.Kind == KindNotSupported
	}
	if other, ok := target.(*PinotError); ok {
		return other.Number == pe.Number
	}
	return false
}

func (pe *PinotError) withCause(err error) *PinotError {
	pe.cause = err
	return pe
}

const (
	/* connection and cursor state */

	// ErrCodeConnectionClosed is an error code for the case where a closed connection is used.
	ErrCodeConnectionClosed = 270001
	// ErrCodeCursorClosed is an error code for the case where a closed cursor is used.
	ErrCodeCursorClosed = 270002
	// ErrCodeNotExecuted is an error code for the case where rows are fetched before Execute.
	ErrCodeNotExecuted = 270003

	/* configuration */

	// ErrCodeInvalidDSN is an error code for a DSN that cannot be parsed.
	ErrCodeInvalidDSN = 271001
	// ErrCodeInvalidConfigValue is an error code for an option with an invalid value.
	ErrCodeInvalidConfigValue = 271002
	// ErrCodeFailedToFindDSNInToml is an error code for a missing connection in connections.toml.
	ErrCodeFailedToFindDSNInToml = 271003
	// ErrCodeTomlFileParsingFailed is an error code for a connections.toml that cannot be parsed.
	ErrCodeTomlFileParsingFailed = 271004
	// ErrCodeInvalidFilePermission is an error code for a connections.toml readable or writable by others.
	ErrCodeInvalidFilePermission = 271005

	/* query */

	// ErrCodeInvalidParameter is an error code for a template that cannot be interpolated.
	ErrCodeInvalidParameter = 272001
	// ErrCodeHTTPStatus is an error code for a non-200 broker response.
	ErrCodeHTTPStatus = 272002
	// ErrCodeInvalidJSONResponse is an error code for a response body that is not JSON.
	ErrCodeInvalidJSONResponse = 272003
	// ErrCodeQueryException is an error code for exceptions embedded in a broker response.
	ErrCodeQueryException = 272004
	// ErrCodeInsufficientServers is an error code for too few servers responding.
	ErrCodeInsufficientServers = 272005
	// ErrCodeGroupByMismatch is an error code for aggregations with different group-by columns.
	ErrCodeGroupByMismatch = 272006
	// ErrCodeMixedAggregation is an error code for global aggregations mixed with group-by results.
	ErrCodeMixedAggregation = 272007
	// ErrCodeMissingColumns is an error code for rows returned without column names.
	ErrCodeMissingColumns = 272008
	// ErrCodeRowArity is an error code for rows whose length does not match the columns.
	ErrCodeRowArity = 272009
	// ErrCodeUnknownValueType is an error code for cell values of an unknown JSON type.
	ErrCodeUnknownValueType = 272010
	// ErrCodeConversionFailed is an error code for cell values that cannot be converted.
	ErrCodeConversionFailed = 272011

	/* unsupported */

	// ErrCodeExecuteMany is an error code for batch execution.
	ErrCodeExecuteMany = 273001
	// ErrCodeUnsupportedType is an error code for SQL types Pinot cannot represent.
	ErrCodeUnsupportedType = 273002
	// ErrCodeNoLastInsertID is an error code for LastInsertId, which Pinot has no notion of.
	ErrCodeNoLastInsertID = 273003
)

const (
	errMsgConnectionClosed    = "Connection already closed"
	errMsgCursorClosed        = "Cursor already closed"
	errMsgNotExecuted         = "Called before `execute`"
	errMsgInvalidDSN          = "invalid DSN: %v"
	errMsgInvalidConfigValue  = "invalid value for %v: %v"
	errMsgFailedToFindDSN     = "connection %v not found in connections.toml"
	errMsgFailedToParseToml   = "failed to parse connections.toml: %v"
	errMsgInvalidPermission   = "file %v is writable by group or others, permission: %v"
	errMsgMissingParameter    = "missing value for parameter %q"
	errMsgPlaceholderSyntax   = "unsupported placeholder at offset %d"
	errMsgNotEnoughParameters = "not enough positional parameters for the query"
	errMsgHTTPStatus          = "returned an error, HTTP status %d"
	errMsgInvalidJSONResponse = "Error when querying from %v, raw response is:\n%v"
	errMsgQueryException      = "Query returned exceptions"
	errMsgInsufficientServers = "timed out: Out of %v, only %v responded, while needed was %v"
	errMsgGroupByMismatch     = "Cannot handle aggregations with different group-by columns: %v vs %v"
	errMsgMixedAggregation    = "Cannot mix a global aggregation (%v) with group-by columns %v"
	errMsgTooManyTotals       = "Expected a single ungrouped aggregation total, got %d"
	errMsgMissingColumns      = "Rows were returned without column names"
	errMsgGroupArity          = "Group %v has %d values, expected %d"
	errMsgColumnTypesMismatch = "Got %d column types for %d columns"
	errMsgUnknownValueType    = "Value of unknown type: %v"
	errMsgExecuteMany         = "`executemany` is not supported, use `execute` instead"
	errMsgUnsupportedDataType = "Type %v is not supported"
	errMsgNoLastInsertID      = "LastInsertId is not supported"
)

const (
	// ErrMsgRowArity is an error message for a row whose width differs from the column count.
	ErrMsgRowArity = "Row %d has %d values, expected %d"
	// ErrMsgConversionFailed is an error message for a value that cannot be converted to its column type.
	ErrMsgConversionFailed = "Cannot convert value %v of column %v to %v"
)

func errConnectionClosed() *PinotError {
	return &PinotError{Number: ErrCodeConnectionClosed, Kind: KindInterface, Message: errMsgConnectionClosed}
}

func errCursorClosed() *PinotError {
	return &PinotError{Number: ErrCodeCursorClosed, Kind: KindInterface, Message: errMsgCursorClosed}
}

func errNotExecuted() *PinotError {
	return &PinotError{Number: ErrCodeNotExecuted, Kind: KindInterface, Message: errMsgNotExecuted}
}

func errExecuteMany() *PinotError {
	return &PinotError{Number: ErrCodeExecuteMany, Kind: KindNotSupported, Message: errMsgExecuteMany}
}

func errNoLastInsertID() *PinotError {
	return &PinotError{Number: ErrCodeNoLastInsertID, Kind: KindNotSupported, Message: errMsgNoLastInsertID}
}

// ErrUnsupportedType returns the not-supported error for a SQL type name.
func ErrUnsupportedType(typeName string) error {
	return &PinotError{
		Number:      ErrCodeUnsupportedType,
		Kind:        KindNotSupported,
		Message:     errMsgUnsupportedDataType,
		MessageArgs: []interface{}{typeName},
	}
}
