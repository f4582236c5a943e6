package gopinotdb

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
)

// fakeBroker answers every query with a canned response and records the
// requests it received.
type fakeBroker struct {
	server *httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []recordedRequest
}

type recordedRequest struct {
	header http.Header
	query  queryRequest
}

func newFakeBroker(t *testing.T, status int, body string) *fakeBroker {
	b := &fakeBroker{status: status, body: body}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc(defaultPath, func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.requests = append(b.requests, recordedRequest{header: r.Header.Clone(), query: req})
		status, body := b.status, b.body
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBroker) respond(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status, b.body = status, body
}

func (b *fakeBroker) lastRequest(t *testing.T) recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		t.Fatal("the broker received no request")
	}
	return b.requests[len(b.requests)-1]
}

func (b *fakeBroker) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// config returns a Config pointing at the broker.
func (b *fakeBroker) config(t *testing.T) *Config {
	u, err := url.Parse(b.server.URL)
	assertNilF(t, err)
	host, portText, err := net.SplitHostPort(u.Host)
	assertNilF(t, err)
	port, err := strconv.Atoi(portText)
	assertNilF(t, err)
	return &Config{Host: host, Port: port}
}

// dsn returns a DSN pointing at the broker.
func (b *fakeBroker) dsn(t *testing.T) string {
	dsn, err := DSN(b.config(t))
	assertNilF(t, err)
	return dsn
}

func (b *fakeBroker) connect(t *testing.T) *Connection {
	conn, err := Connect(b.config(t))
	assertNilF(t, err)
	return conn
}

const ageResponse = `{
	"resultTable": {
		"dataSchema": {"columnNames": ["age"], "columnDataTypes": ["INT"]},
		"rows": [[12]]
	},
	"numServersResponded": 1,
	"numServersQueried": 1,
	"timeUsedMs": 3,
	"numDocsScanned": 1,
	"totalDocs": 10
}`

const peopleResponse = `{
	"resultTable": {
		"dataSchema": {
			"columnNames": ["name", "age", "score", "active", "born", "attrs", "tags"],
			"columnDataTypes": ["STRING", "LONG", "DOUBLE", "BOOLEAN", "TIMESTAMP", "JSON", "STRING_ARRAY"]
		},
		"rows": [
			["ann", 31, 1.5, true, "2010-01-01T00:30", "{\"foo\": \"bar\"}", ["a", "b"]],
			["bob", 42, 2.25, false, "2011-02-03 04:05:06.7", "", []],
			[null, null, null, null, null, null, null]
		]
	},
	"numServersResponded": 2,
	"numServersQueried": 2
}`

const boomResponse = `{
	"exceptions": [{"errorCode": 999, "message": "boom"}],
	"numServersResponded": 1,
	"numServersQueried": 1
}`

type unhealthyServer struct {
	host string
	port int
}

// newUnhealthyServer answers every request with 503.
func newUnhealthyServer(t *testing.T) unhealthyServer {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	u, err := url.Parse(server.URL)
	assertNilF(t, err)
	host, portText, err := net.SplitHostPort(u.Host)
	assertNilF(t, err)
	port, err := strconv.Atoi(portText)
	assertNilF(t, err)
	return unhealthyServer{host: host, port: port}
}

// newSlowBroker never answers before blocked is closed.
func newSlowBroker(t *testing.T, blocked <-chan struct{}) *fakeBroker {
	b := &fakeBroker{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-blocked:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(b.server.Close)
	return b
}
