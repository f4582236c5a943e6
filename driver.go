package gopinotdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
)

// PinotDriver is the database/sql driver for Pinot brokers.
type PinotDriver struct{}

// Open creates a new connection from a DSN.
func (d PinotDriver) Open(dsn string) (driver.Conn, error) {
	logger.Info("Open")
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	return d.OpenWithConfig(context.Background(), *cfg)
}

// OpenConnector creates a new connector with the parsed DSN.
func (d PinotDriver) OpenConnector(dsn string) (driver.Connector, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return Connector{}, err
	}
	return NewConnector(d, *cfg), nil
}

// OpenWithConfig creates a new connection from the given Config.
func (d PinotDriver) OpenWithConfig(ctx context.Context, cfg Config) (driver.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := Connect(&cfg)
	if err != nil {
		return nil, err
	}
	return &pinotConn{conn: conn}, nil
}

var pinotDriver *PinotDriver

func init() {
	pinotDriver = &PinotDriver{}
	sql.Register("pinot", pinotDriver)
}
