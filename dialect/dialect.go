// Package dialect provides what an ORM or SQL builder needs to treat Pinot
// as a relational database: SQL type compilation, identifier quoting and
// metadata introspection through the Pinot controller.
package dialect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pinot-dbapi/gopinotdb"
)

// Name is the dialect name.
const Name = "pinot"

// DefaultControllerURL is used when the URL names no controller.
const DefaultControllerURL = "http://localhost:9000/"

// controllerKeys are the URL query keys naming the controller. "server" is
// accepted for older URLs.
var controllerKeys = []string{"controller", "server"}

// ParseURL splits a dialect URL into the broker connection config and the
// controller URL.
//
//	pinot[+https]://[user[:password]@]host[:port]/path?controller=http://controller:9000/&option=value
func ParseURL(dialectURL string) (*gopinotdb.Config, *url.URL, error) {
	u, err := url.Parse(dialectURL)
	if err != nil {
		return nil, nil, err
	}
	switch u.Scheme {
	case "pinot", "pinot+http":
		u.Scheme = "pinot"
	case "pinot+https":
	default:
		return nil, nil, fmt.Errorf("unsupported dialect scheme %q", u.Scheme)
	}
	query := u.Query()
	controller := DefaultControllerURL
	for _, key := range controllerKeys {
		if v := query.Get(key); v != "" {
			controller = v
		}
		query.Del(key)
	}
	controllerURL, err := url.Parse(controller)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid controller URL %q: %w", controller, err)
	}
	u.RawQuery = query.Encode()
	cfg, err := gopinotdb.ParseDSN(u.String())
	if err != nil {
		return nil, nil, err
	}
	return cfg, controllerURL, nil
}

// Dialect ties a broker connection to the controller it reads metadata from.
type Dialect struct {
	conn       *gopinotdb.Connection
	controller *url.URL
}

// Open connects to the broker and controller named by a dialect URL.
func Open(dialectURL string) (*Dialect, error) {
	cfg, controller, err := ParseURL(dialectURL)
	if err != nil {
		return nil, err
	}
	conn, err := gopinotdb.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return New(conn, controller), nil
}

// New creates a dialect over an open connection.
func New(conn *gopinotdb.Connection, controller *url.URL) *Dialect {
	return &Dialect{conn: conn, controller: controller}
}

// Connection returns the broker connection of the dialect.
func (d *Dialect) Connection() *gopinotdb.Connection {
	return d.conn
}

// Inspector returns the metadata inspector of the dialect.
func (d *Dialect) Inspector() *Inspector {
	return &Inspector{conn: d.conn, controller: d.controller}
}

// Query runs a query on a new cursor and returns all rows.
func (d *Dialect) Query(ctx context.Context, query string, params map[string]any) ([]string, [][]any, error) {
	cursor, err := d.conn.Execute(ctx, query, params)
	if err != nil {
		return nil, nil, err
	}
	defer cursor.Close()
	rows, err := cursor.FetchAll()
	if err != nil {
		return nil, nil, err
	}
	return cursor.Columns(), rows, nil
}

// Close closes the broker connection.
func (d *Dialect) Close() error {
	return d.conn.Close()
}
