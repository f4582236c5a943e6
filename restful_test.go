package gopinotdb

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPostQueryRequest(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	cfg := broker.config(t)
	cfg.Username, cfg.Password = "alice", "secret"
	cfg.ExtraRequestHeaders = map[string]string{"X-Team": "data", "Content-Type": "text/plain"}
	cfg.QueryOptions = map[string]string{"timeoutMs": "100"}
	cfg.UseMultistageEngine = true
	conn, err := Connect(cfg)
	assertNilF(t, err)
	defer conn.Close()

	_, err = conn.Execute(context.Background(), "SELECT 1", nil)
	assertNilF(t, err)
	req := broker.lastRequest(t)
	assertEqualE(t, req.query.SQL, "SELECT 1")
	assertEqualE(t, req.query.QueryOptions, "timeoutMs=100;useMultistageEngine=true")
	assertEqualE(t, req.header.Get("Content-Type"), headerContentTypeApplicationJSON)
	assertEqualE(t, req.header.Get("X-Team"), "data")
	assertTrueE(t, strings.HasPrefix(req.header.Get("User-Agent"), clientType))
	_, err = uuid.Parse(req.header.Get(headerRequestID))
	assertNilE(t, err)

	r := &http.Request{Header: req.header}
	username, password, ok := r.BasicAuth()
	assertTrueF(t, ok, "basic auth is set")
	assertEqualE(t, username, "alice")
	assertEqualE(t, password, "secret")
}

func TestPostQueryWithoutOptions(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	conn := broker.connect(t)
	defer conn.Close()
	_, err := conn.Execute(context.Background(), "SELECT 1", nil)
	assertNilF(t, err)
	req := broker.lastRequest(t)
	assertEqualE(t, req.query.QueryOptions, "")
	_, _, ok := (&http.Request{Header: req.header}).BasicAuth()
	assertFalseE(t, ok)
}

func TestPreserveTypes(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	cfg := broker.config(t)
	cfg.PreserveTypes = true
	conn, err := Connect(cfg)
	assertNilF(t, err)
	defer conn.Close()
	_, err = conn.Execute(context.Background(), "SELECT 1", nil)
	assertNilF(t, err)
	assertEqualE(t, broker.lastRequest(t).query.SQL, "SELECT 1 OPTION(preserveType='true')")
}

func TestRequestIDFromContext(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	conn := broker.connect(t)
	defer conn.Close()
	requestID := uuid.New()
	cursor, err := conn.Execute(WithRequestID(context.Background(), requestID), "SELECT 1", nil)
	assertNilF(t, err)
	assertEqualE(t, broker.lastRequest(t).header.Get(headerRequestID), requestID.String())
	assertEqualE(t, cursor.Stats().RequestID, requestID.String())
}

func TestTruncateForLog(t *testing.T) {
	assertEqualE(t, truncateForLog("short"), "short")
	long := strings.Repeat("x", maxLoggedBody+10)
	assertEqualE(t, len(truncateForLog(long)), maxLoggedBody+3)
}
