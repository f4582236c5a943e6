package gopinotdb

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ParamKind is the kind of a query parameter value.
type ParamKind int

const (
	// ParamString is a string value, rendered single-quoted.
	ParamString ParamKind = iota
	// ParamNumber is an integer or float value, rendered as a bare literal.
	ParamNumber
	// ParamBoolean is rendered as TRUE or FALSE.
	ParamBoolean
	// ParamSequence is a slice or array, rendered as a comma separated list.
	ParamSequence
	// ParamOther is any other value, rendered as is.
	ParamOther
)

// Param is a query parameter classified once when it enters the driver.
type Param struct {
	Kind ParamKind
	// literal holds the rendered string, number or boolean, or the fmt
	// representation of an other value.
	literal string
	items   []Param
}

// NewParam classifies a Go value.
func NewParam(value any) Param {
	if valuer, ok := value.(driver.Valuer); ok {
		if v, err := valuer.Value(); err == nil {
			value = v
		}
	}
	switch v := value.(type) {
	case nil:
		return Param{Kind: ParamOther, literal: "NULL"}
	case Param:
		return v
	case string:
		return Param{Kind: ParamString, literal: v}
	case bool:
		if v {
			return Param{Kind: ParamBoolean, literal: "TRUE"}
		}
		return Param{Kind: ParamBoolean, literal: "FALSE"}
	case json.Number:
		return Param{Kind: ParamNumber, literal: v.String()}
	case []byte:
		return Param{Kind: ParamOther, literal: string(v)}
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Param{Kind: ParamNumber, literal: strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Param{Kind: ParamNumber, literal: strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32:
		return Param{Kind: ParamNumber, literal: formatFloat(rv.Float(), 32)}
	case reflect.Float64:
		return Param{Kind: ParamNumber, literal: formatFloat(rv.Float(), 64)}
	case reflect.String:
		return Param{Kind: ParamString, literal: rv.String()}
	case reflect.Bool:
		return NewParam(rv.Bool())
	case reflect.Slice, reflect.Array:
		items := make([]Param, rv.Len())
		for i := range items {
			items[i] = NewParam(rv.Index(i).Interface())
		}
		return Param{Kind: ParamSequence, items: items}
	}
	return Param{Kind: ParamOther, literal: fmt.Sprint(value)}
}

// formatFloat renders f like Python's float repr: positional notation with at
// least one fractional digit for decimal exponents in [-4, 16), scientific
// notation with a two digit exponent otherwise.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, bitSize)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if f != 0 && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Escape renders the parameter as SQL text.
func (p Param) Escape() string {
	switch p.Kind {
	case ParamString:
		if p.literal == "*" {
			return p.literal
		}
		return "'" + strings.ReplaceAll(p.literal, "'", "''") + "'"
	case ParamSequence:
		escaped := make([]string, len(p.items))
		for i, item := range p.items {
			escaped[i] = item.Escape()
		}
		return strings.Join(escaped, ", ")
	}
	return p.literal
}

// Interpolate substitutes %(name)s placeholders in query with the escaped
// params. A literal percent sign is written %%. Without params the query is
// returned unchanged.
func Interpolate(query string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return query, nil
	}
	named := make(map[string]Param, len(params))
	for name, value := range params {
		named[name] = NewParam(value)
	}
	return interpolate(query, named, nil)
}

// interpolate expands %(name)s from named and %s from positional, in order.
func interpolate(query string, named map[string]Param, positional []Param) (string, error) {
	if len(named) == 0 && len(positional) == 0 {
		return query, nil
	}
	var b strings.Builder
	b.Grow(len(query))
	next := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		rest := query[i+1:]
		switch {
		case strings.HasPrefix(rest, "%"):
			b.WriteByte('%')
			i++
		case strings.HasPrefix(rest, "s") && len(positional) > 0:
			if next >= len(positional) {
				return "", parameterError(errMsgNotEnoughParameters, nil, query)
			}
			b.WriteString(positional[next].Escape())
			next++
			i++
		case strings.HasPrefix(rest, "("):
			end := strings.Index(rest, ")s")
			if end < 0 {
				return "", parameterError(errMsgPlaceholderSyntax, []interface{}{i}, query)
			}
			name := rest[1:end]
			p, ok := named[name]
			if !ok {
				return "", parameterError(errMsgMissingParameter, []interface{}{name}, query)
			}
			b.WriteString(p.Escape())
			i += end + 2
		default:
			return "", parameterError(errMsgPlaceholderSyntax, []interface{}{i}, query)
		}
	}
	return b.String(), nil
}

func parameterError(message string, args []interface{}, query string) *PinotError {
	return &PinotError{
		Number:      ErrCodeInvalidParameter,
		Kind:        KindProgramming,
		Message:     message,
		MessageArgs: args,
		Query:       query,
	}
}

// bindNamedValues splits database/sql arguments into named and positional params.
func bindNamedValues(args []driver.NamedValue) (map[string]Param, []Param) {
	var named map[string]Param
	var positional []Param
	for _, arg := range args {
		if arg.Name != "" {
			if named == nil {
				named = make(map[string]Param)
			}
			named[arg.Name] = NewParam(arg.Value)
			continue
		}
		positional = append(positional, NewParam(arg.Value))
	}
	return named, positional
}
