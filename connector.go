package gopinotdb

import (
	"context"
	"database/sql/driver"
)

// InternalPinotDriver is the driver interface a Connector opens connections with.
type InternalPinotDriver interface {
	Open(dsn string) (driver.Conn, error)
	OpenWithConfig(ctx context.Context, cfg Config) (driver.Conn, error)
}

// Connector creates connections from a Config, without a DSN round trip.
type Connector struct {
	driver InternalPinotDriver
	cfg    Config
}

// NewConnector creates a new connector with the given driver and config.
//
//	db := sql.OpenDB(gopinotdb.NewConnector(gopinotdb.PinotDriver{}, *cfg))
func NewConnector(driver InternalPinotDriver, config Config) driver.Connector {
	return Connector{driver, config}
}

// Connect creates a new connection.
func (t Connector) Connect(ctx context.Context) (driver.Conn, error) {
	cfg := t.cfg
	fillMissingConfigParameters(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return t.driver.OpenWithConfig(ctx, cfg)
}

// Driver creates a new driver.
func (t Connector) Driver() driver.Driver {
	return PinotDriver{}
}
