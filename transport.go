package gopinotdb

import (
	"crypto/tls"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

// transportConfig holds the configuration for creating HTTP transports
type transportConfig struct {
	MaxIdleConns    int
	IdleConnTimeout time.Duration
	DialTimeout     time.Duration
	KeepAlive       time.Duration
}

// defaultTransportConfig returns the standard transport configuration
func defaultTransportConfig() *transportConfig {
	return &transportConfig{
		MaxIdleConns:    10,
		IdleConnTimeout: 30 * time.Minute,
		DialTimeout:     30 * time.Second,
		KeepAlive:       30 * time.Second,
	}
}

type transportFactory struct {
	config *Config
}

func newTransportFactory(config *Config) *transportFactory {
	return &transportFactory{config: config}
}

func (tf *transportFactory) createTransport(transportConfig *transportConfig) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   transportConfig.DialTimeout,
		KeepAlive: transportConfig.KeepAlive,
	}
	var tlsConfig *tls.Config
	if tf.config.Scheme == "https" {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		if tf.config.VerifySSL == ConfigBoolFalse {
			logger.Warn("TLS certificate verification of the broker is disabled")
			tlsConfig.InsecureSkipVerify = true
		}
	}
	return &http.Transport{
		TLSClientConfig: tlsConfig,
		MaxIdleConns:    transportConfig.MaxIdleConns,
		IdleConnTimeout: transportConfig.IdleConnTimeout,
		Proxy:           http.ProxyFromEnvironment,
		DialContext:     dialer.DialContext,
	}
}

// session is the HTTP client of a connection. A session created by the
// driver is owned and closed with the connection; a caller supplied client
// is never closed.
type session struct {
	client *http.Client
	owned  bool
	closed atomic.Bool
}

func newOwnedSession(cfg *Config) *session {
	transport := newTransportFactory(cfg).createTransport(defaultTransportConfig())
	return &session{client: &http.Client{Transport: transport}, owned: true}
}

func newExternalSession(client *http.Client) *session {
	return &session{client: client}
}

func (s *session) isClosed() bool {
	return s.closed.Load()
}

func (s *session) close() {
	if !s.owned {
		return
	}
	if s.closed.CompareAndSwap(false, true) {
		s.client.CloseIdleConnections()
	}
}
