package gopinotdb

import (
	"database/sql/driver"
	"math"
	"testing"
)

func TestInterpolateEscapesQuotes(t *testing.T) {
	query, err := Interpolate("WHERE name = %(name)s", map[string]any{"name": "O'Brien"})
	assertNilF(t, err)
	assertEqualE(t, query, "WHERE name = 'O''Brien'")
}

func TestInterpolateValueKinds(t *testing.T) {
	testcases := []struct {
		value    any
		expected string
	}{
		{"*", "*"},
		{"abc", "'abc'"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint8(3), "3"},
		{1.5, "1.5"},
		{float32(0.25), "0.25"},
		{3.0, "3.0"},
		{-2.0, "-2.0"},
		{0.0, "0.0"},
		{1e6, "1000000.0"},
		{123456789.0, "123456789.0"},
		{0.0001, "0.0001"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e20, "1.5e+20"},
		{1e-5, "1e-05"},
		{2.5e-7, "2.5e-07"},
		{math.Inf(1), "inf"},
		{true, "TRUE"},
		{false, "FALSE"},
		{[]string{"a", "b'c"}, "'a', 'b''c'"},
		{[]any{1, "x", false}, "1, 'x', FALSE"},
		{[2]int{1, 2}, "1, 2"},
		{nil, "NULL"},
		{struct{ A int }{A: 1}, "{1}"},
	}
	for _, tc := range testcases {
		t.Run(tc.expected, func(t *testing.T) {
			query, err := Interpolate("SELECT %(v)s", map[string]any{"v": tc.value})
			assertNilF(t, err)
			assertEqualE(t, query, "SELECT "+tc.expected)
		})
	}
}

func TestInterpolateParamKinds(t *testing.T) {
	assertEqualE(t, NewParam("x").Kind, ParamString)
	assertEqualE(t, NewParam(1).Kind, ParamNumber)
	assertEqualE(t, NewParam(true).Kind, ParamBoolean)
	assertEqualE(t, NewParam([]int{1}).Kind, ParamSequence)
	assertEqualE(t, NewParam(map[string]int{}).Kind, ParamOther)
}

func TestInterpolateWithoutParams(t *testing.T) {
	query, err := Interpolate("SELECT * FROM t WHERE a LIKE 'x%'", nil)
	assertNilF(t, err)
	assertEqualE(t, query, "SELECT * FROM t WHERE a LIKE 'x%'")
}

func TestInterpolatePercentEscape(t *testing.T) {
	query, err := Interpolate("SELECT * FROM t WHERE a LIKE 'x%%' AND b = %(b)s", map[string]any{"b": 1})
	assertNilF(t, err)
	assertEqualE(t, query, "SELECT * FROM t WHERE a LIKE 'x%' AND b = 1")
}

func TestInterpolateMissingParameter(t *testing.T) {
	_, err := Interpolate("SELECT %(a)s, %(b)s", map[string]any{"a": 1})
	assertNotNilF(t, err)
	assertErrIsE(t, err, ErrProgramming)
	var pe *PinotError
	assertErrorsAsF(t, err, &pe)
	assertEqualE(t, pe.Number, ErrCodeInvalidParameter)
	assertStringContainsE(t, err.Error(), `"b"`)
}

func TestInterpolateStrayPercent(t *testing.T) {
	_, err := Interpolate("SELECT 100% FROM t WHERE a = %(a)s", map[string]any{"a": 1})
	assertErrIsE(t, err, ErrProgramming)
}

func TestInterpolatePositional(t *testing.T) {
	named, positional := bindNamedValues([]driver.NamedValue{
		{Ordinal: 1, Value: "x"},
		{Ordinal: 2, Value: []int64{1, 2}},
	})
	query, err := interpolate("SELECT * FROM t WHERE a = %s AND b IN (%s)", named, positional)
	assertNilF(t, err)
	assertEqualE(t, query, "SELECT * FROM t WHERE a = 'x' AND b IN (1, 2)")

	_, err = interpolate("SELECT %s, %s, %s", named, positional)
	assertErrIsE(t, err, ErrProgramming)
}

func TestInterpolateNamedValues(t *testing.T) {
	named, positional := bindNamedValues([]driver.NamedValue{{Name: "city", Ordinal: 1, Value: "Paris"}})
	assertEqualE(t, len(positional), 0)
	query, err := interpolate("WHERE city = %(city)s", named, positional)
	assertNilF(t, err)
	assertEqualE(t, query, "WHERE city = 'Paris'")
}
