package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pinot-dbapi/gopinotdb"
)

const carriersResponse = `{
	"resultTable": {
		"dataSchema": {"columnNames": ["Carrier", "flights"], "columnDataTypes": ["STRING", "LONG"]},
		"rows": [["AA", 100], [null, 3]]
	},
	"exceptions": [],
	"numServersQueried": 2,
	"numServersResponded": 2,
	"numDocsScanned": 103,
	"totalDocs": 1000,
	"timeUsedMs": 4
}`

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"carrier=AA", "expr=a=b"})
	if err != nil {
		t.Fatal(err)
	}
	if params["carrier"] != "AA" || params["expr"] != "a=b" {
		t.Fatalf("unexpected params: %v", params)
	}
	if params, err = parseParams(nil); err != nil || params != nil {
		t.Fatalf("expected no params, got %v, %v", params, err)
	}
	if _, err = parseParams([]string{"novalue"}); err == nil {
		t.Fatal("expected an error for a parameter without value")
	}
}

func TestPrintCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(carriersResponse))
	}))
	defer server.Close()

	cfg, err := gopinotdb.ParseDSN(strings.Replace(server.URL, "http://", "pinot://", 1))
	if err != nil {
		t.Fatal(err)
	}
	conn, err := gopinotdb.Connect(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	cursor, err := conn.Execute(context.Background(), "SELECT Carrier, count(*) AS flights FROM airlineStats GROUP BY Carrier", nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = printCursor(&buf, cursor, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, expected := range []string{"Carrier", "flights", "AA", "100", "NULL", "(2 rows)", "2/2 servers responded", "103 docs scanned of 1000"} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in output:\n%v", expected, out)
		}
	}
}
