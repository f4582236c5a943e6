package gopinotdb

import (
	"os"
	path "path/filepath"
	"runtime"
	"strings"

	toml "github.com/BurntSushi/toml"
)

const (
	pinotHomeEnv              = "PINOT_HOME"
	pinotDefaultConnectionEnv = "PINOT_DEFAULT_CONNECTION_NAME"
	connectionsFileName       = "connections.toml"
)

// LoadConnectionConfig returns the connection config loaded from the toml file.
// By default, PINOT_HOME (the directory of connections.toml) is ~/.pinot and
// PINOT_DEFAULT_CONNECTION_NAME (the table to read) is 'default'.
func LoadConnectionConfig() (*Config, error) {
	connectionName := getConnectionName(os.Getenv(pinotDefaultConnectionEnv))
	pinotConfigDir, err := getTomlFilePath(os.Getenv(pinotHomeEnv))
	if err != nil {
		return nil, err
	}
	tomlFilePath := path.Join(pinotConfigDir, connectionsFileName)
	if err = validateFilePermission(tomlFilePath); err != nil {
		return nil, err
	}
	tomlInfo := make(map[string]interface{})
	if _, err = toml.DecodeFile(tomlFilePath, &tomlInfo); err != nil {
		return nil, (&PinotError{
			Number:      ErrCodeTomlFileParsingFailed,
			Kind:        KindInterface,
			Message:     errMsgFailedToParseToml,
			MessageArgs: []interface{}{err},
		}).withCause(err)
	}
	connection, ok := tomlInfo[connectionName].(map[string]interface{})
	if !ok {
		return nil, &PinotError{
			Number:      ErrCodeFailedToFindDSNInToml,
			Kind:        KindInterface,
			Message:     errMsgFailedToFindDSN,
			MessageArgs: []interface{}{connectionName},
		}
	}
	cfg := &Config{}
	if err = parseToml(cfg, connection); err != nil {
		return nil, err
	}
	fillMissingConfigParameters(cfg)
	if err = validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseToml decodes one connection table. Keys are matched case-insensitively
// and "user" is accepted for "username".
func parseToml(cfg *Config, connection map[string]interface{}) error {
	options := make(map[string]interface{}, len(connection))
	for key, value := range connection {
		key = strings.ToLower(key)
		if key == "user" {
			key = "username"
		}
		options[key] = value
	}
	return decodeConfigOptions(cfg, options)
}

func getTomlFilePath(filePath string) (string, error) {
	if len(filePath) != 0 {
		if path.IsAbs(filePath) {
			return filePath, nil
		}
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		filePath = path.Join(homeDir, ".pinot")
	}
	return path.Abs(filePath)
}

func getConnectionName(name string) string {
	if len(name) != 0 {
		return name
	}
	return "default"
}

// validateFilePermission rejects files writable by group or others, since
// connections.toml may hold passwords.
func validateFilePermission(filePath string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return err
	}
	if permission := fileInfo.Mode().Perm(); permission&0022 != 0 {
		return &PinotError{
			Number:      ErrCodeInvalidFilePermission,
			Kind:        KindInterface,
			Message:     errMsgInvalidPermission,
			MessageArgs: []interface{}{filePath, permission},
		}
	}
	return nil
}
