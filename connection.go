package gopinotdb

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/pinot-dbapi/gopinotdb/pinotlog"
)

const healthPath = "/health"

// Connection is a connection to a Pinot broker. It hands out cursors, which
// run the queries. Pinot has no transactions, so Commit does nothing.
type Connection struct {
	cfg     *Config
	checker *responseChecker

	mu      sync.Mutex
	session *session
	cursors []*Cursor
	closed  bool
}

// Connect opens a connection to the broker described by cfg. No request is
// sent until the first query.
func Connect(cfg *Config) (*Connection, error) {
	c := *cfg
	fillMissingConfigParameters(&c)
	if err := validateConfig(&c); err != nil {
		return nil, err
	}
	if err := initClientConfigLogging(c.ClientConfigFile); err != nil {
		logger.Warnf("failed to configure logging from the client config: %v", err)
	}
	if c.Debug && logger.GetLogLevelInt() > pinotlog.LevelDebug {
		_ = logger.SetLogLevelInt(pinotlog.LevelDebug)
	}
	if err := fillPasswordFromKeyring(&c); err != nil {
		return nil, err
	}
	logger.Infof("connecting to %v as %q", c.brokerURL(), c.Username)
	return &Connection{cfg: &c, checker: newResponseChecker(&c)}, nil
}

// currentSession returns the session of the connection. A caller supplied
// HTTP client is used as is; otherwise an owned session is created on first
// use and replaced when it has been closed. Callers must hold c.mu.
func (c *Connection) currentSession() *session {
	if c.cfg.HTTPClient != nil {
		if c.session == nil {
			c.session = newExternalSession(c.cfg.HTTPClient)
		}
		return c.session
	}
	if c.session == nil || c.session.isClosed() {
		if c.session != nil {
			logger.Debug("session was closed, creating a new one")
		}
		c.session = newOwnedSession(c.cfg)
	}
	return c.session
}

// Cursor returns a new cursor using the connection.
func (c *Connection) Cursor() (*Cursor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errConnectionClosed()
	}
	cursor := newCursor(c, &pinotRestful{cfg: c.cfg, session: c.currentSession()}, c.checker)
	c.cursors = append(c.cursors, cursor)
	return cursor, nil
}

// forget drops a closed cursor from the connection.
func (c *Connection) forget(cursor *Cursor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursors = slices.DeleteFunc(c.cursors, func(cur *Cursor) bool { return cur == cursor })
}

// Execute runs a query on a new cursor and returns the cursor.
func (c *Connection) Execute(ctx context.Context, query string, params map[string]any) (*Cursor, error) {
	cursor, err := c.Cursor()
	if err != nil {
		return nil, err
	}
	if err = cursor.Execute(ctx, query, params); err != nil {
		return nil, err
	}
	return cursor, nil
}

// Commit does nothing, since Pinot does not support transactions.
func (c *Connection) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnectionClosed()
	}
	return nil
}

// Ping checks the broker health endpoint.
func (c *Connection) Ping(ctx context.Context) error {
	statusCode, body, err := c.Get(ctx, c.cfg.baseURL()+healthPath)
	if err != nil {
		return err
	}
	if statusCode != http.StatusOK {
		return &PinotError{
			Number:      ErrCodeHTTPStatus,
			Kind:        KindProgramming,
			Message:     errMsgHTTPStatus,
			MessageArgs: []interface{}{statusCode},
			Detail:      string(body),
		}
	}
	return nil
}

// Get sends a GET request to fullURL with the session, headers and
// credentials of the connection, and returns the status code and body. The
// dialect uses it to read controller metadata.
func (c *Connection) Get(ctx context.Context, fullURL string) (int, []byte, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, nil, errConnectionClosed()
	}
	rest := &pinotRestful{cfg: c.cfg, session: c.currentSession()}
	c.mu.Unlock()
	return rest.get(ctx, fullURL)
}

// Close closes the connection and all its cursors. Cursors closed before are
// skipped. The session is closed only when the connection created it.
// Closing a closed connection is an error.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errConnectionClosed()
	}
	c.closed = true
	cursors := c.cursors
	c.cursors = nil
	sess := c.session
	c.mu.Unlock()

	var errs []error
	for _, cursor := range cursors {
		if err := cursor.Close(); err != nil {
			var pe *PinotError
			if errors.As(err, &pe) && pe.Number == ErrCodeCursorClosed {
				continue
			}
			errs = append(errs, err)
		}
	}
	if sess != nil {
		sess.close()
	}
	logger.Debugf("closed connection to %v", c.cfg.brokerURL())
	return errors.Join(errs...)
}

// IsClosed reports whether Close was called.
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
