package gopinotdb

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

// openKeyring opens the OS keyring for a service. Tests replace it with an
// in-memory keyring.
var openKeyring = func(service string) (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName:              service,
		KeychainTrustApplication: true,
	})
}

func credentialKey(cfg *Config) string {
	return fmt.Sprintf("%v@%v", cfg.Username, cfg.Host)
}

// fillPasswordFromKeyring reads the password of cfg.Username from the OS
// keyring when no password is configured.
func fillPasswordFromKeyring(cfg *Config) error {
	if cfg.Password != "" || cfg.KeyringService == "" || cfg.Username == "" {
		return nil
	}
	ring, err := openKeyring(cfg.KeyringService)
	if err != nil {
		return fmt.Errorf("failed to open keyring %v: %w", cfg.KeyringService, err)
	}
	item, err := ring.Get(credentialKey(cfg))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		logger.Debugf("no password for %v in keyring %v", cfg.Username, cfg.KeyringService)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read password from keyring %v: %w", cfg.KeyringService, err)
	}
	cfg.Password = string(item.Data)
	logger.Debugf("read password of %v from keyring %v", cfg.Username, cfg.KeyringService)
	return nil
}

// StorePassword saves the password of cfg.Username into the OS keyring
// service cfg.KeyringService, where connections with an empty password
// look it up.
func StorePassword(cfg *Config, password string) error {
	if cfg.KeyringService == "" || cfg.Username == "" {
		return errors.New("keyring service and username are required")
	}
	ring, err := openKeyring(cfg.KeyringService)
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{
		Key:         credentialKey(cfg),
		Data:        []byte(password),
		Label:       "Pinot password for " + cfg.Username,
		Description: "Pinot broker password",
	})
}
