package gopinotdb

import (
	"context"
	"net/http"
	"testing"
)

func TestConnectionExecute(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	conn := broker.connect(t)
	defer conn.Close()

	cursor, err := conn.Execute(context.Background(), "SELECT age FROM people WHERE name = %(name)s", map[string]any{"name": "O'Brien"})
	assertNilF(t, err)
	assertEqualE(t, broker.lastRequest(t).query.SQL, "SELECT age FROM people WHERE name = 'O''Brien'")
	row, err := cursor.FetchOne()
	assertNilF(t, err)
	assertDeepEqualE(t, row, []any{int64(12)})
	assertEqualE(t, cursor.Description()[0].Type, TypeNumber)
}

func TestConnectionCloseClosesCursors(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	conn := broker.connect(t)
	first, err := conn.Cursor()
	assertNilF(t, err)
	second, err := conn.Cursor()
	assertNilF(t, err)
	assertNilF(t, first.Close())

	assertNilF(t, conn.Close(), "already closed cursors are skipped")
	assertTrueE(t, conn.IsClosed())
	assertTrueE(t, second.IsClosed())
}

func TestConnectionDoubleClose(t *testing.T) {
	conn, err := Connect(&Config{})
	assertNilF(t, err)
	assertNilF(t, conn.Close())
	err = conn.Close()
	assertErrIsE(t, err, ErrInterface)
	assertErrIsE(t, err, errConnectionClosed())
}

func TestConnectionClosedOperations(t *testing.T) {
	conn, err := Connect(&Config{})
	assertNilF(t, err)
	assertNilF(t, conn.Close())

	_, err = conn.Cursor()
	assertErrIsE(t, err, ErrInterface)
	_, err = conn.Execute(context.Background(), "SELECT 1", nil)
	assertErrIsE(t, err, ErrInterface)
	assertErrIsE(t, conn.Commit(), ErrInterface)
	assertErrIsE(t, conn.Ping(context.Background()), ErrInterface)
}

func TestConnectionCommit(t *testing.T) {
	conn, err := Connect(&Config{})
	assertNilF(t, err)
	defer conn.Close()
	assertNilE(t, conn.Commit())
}

func TestConnectionOwnedSession(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	conn := broker.connect(t)
	_, err := conn.Cursor()
	assertNilF(t, err)
	sess := conn.session
	assertTrueE(t, sess.owned)
	assertNilF(t, conn.Close())
	assertTrueE(t, sess.isClosed(), "an owned session is closed with the connection")
}

func TestConnectionRenewsClosedSession(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	conn := broker.connect(t)
	defer conn.Close()
	_, err := conn.Cursor()
	assertNilF(t, err)
	stale := conn.session
	stale.close()

	cursor, err := conn.Cursor()
	assertNilF(t, err)
	assertTrueE(t, conn.session != stale, "a closed session is replaced")
	assertFalseE(t, conn.session.isClosed())
	assertNilE(t, cursor.Execute(context.Background(), "SELECT age FROM people", nil))
}

func TestConnectionExternalSession(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	cfg := broker.config(t)
	client := &http.Client{}
	cfg.HTTPClient = client
	conn, err := Connect(cfg)
	assertNilF(t, err)
	cursor, err := conn.Cursor()
	assertNilF(t, err)
	assertNilF(t, cursor.Execute(context.Background(), "SELECT age FROM people", nil))
	assertTrueE(t, conn.session.client == client)
	assertFalseE(t, conn.session.owned)

	assertNilF(t, conn.Close())
	assertFalseE(t, conn.session.isClosed(), "a caller supplied session is never closed")
}

func TestConnectionPing(t *testing.T) {
	broker := newFakeBroker(t, http.StatusOK, ageResponse)
	conn := broker.connect(t)
	defer conn.Close()
	assertNilE(t, conn.Ping(context.Background()))
}

func TestConnectionPingUnhealthy(t *testing.T) {
	server := newUnhealthyServer(t)
	cfg := &Config{}
	cfg.Host, cfg.Port = server.host, server.port
	conn, err := Connect(cfg)
	assertNilF(t, err)
	defer conn.Close()
	assertErrIsE(t, conn.Ping(context.Background()), ErrProgramming)
}

func TestConnectInvalidConfig(t *testing.T) {
	_, err := Connect(&Config{Scheme: "gopher"})
	assertErrIsE(t, err, ErrInterface)
}

func TestConnectDoesNotModifyConfig(t *testing.T) {
	cfg := &Config{Host: "broker"}
	conn, err := Connect(cfg)
	assertNilF(t, err)
	defer conn.Close()
	assertEqualE(t, cfg.Port, 0)
	assertEqualE(t, conn.cfg.Port, defaultPort)
}
