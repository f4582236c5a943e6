package gopinotdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pinot-dbapi/gopinotdb/pinotlog"
)

const clientConfigEnvName = "PINOT_CLIENT_CONFIG_FILE"

// ClientConfig config root
type ClientConfig struct {
	Common *ClientConfigCommonProps `json:"common"`
}

// ClientConfigCommonProps properties from "common" section
type ClientConfigCommonProps struct {
	LogLevel *string `json:"log_level"`
	LogPath  *string `json:"log_path"`
}

func parseClientConfiguration(filePath string) (*ClientConfig, error) {
	if filePath == "" {
		return nil, nil
	}
	fileContents, readErr := os.ReadFile(filePath)
	if readErr != nil {
		return nil, parsingClientConfigError(readErr)
	}
	var clientConfig ClientConfig
	if parseErr := json.Unmarshal(fileContents, &clientConfig); parseErr != nil {
		return nil, parsingClientConfigError(parseErr)
	}
	if validateErr := validateClientConfiguration(&clientConfig); validateErr != nil {
		return nil, parsingClientConfigError(validateErr)
	}
	return &clientConfig, nil
}

func parsingClientConfigError(err error) error {
	return fmt.Errorf("parsing client config failed: %w", err)
}

func validateClientConfiguration(clientConfig *ClientConfig) error {
	if clientConfig.Common == nil {
		return errors.New("common section in client config not found")
	}
	if logLevel := clientConfig.Common.LogLevel; logLevel != nil && *logLevel != "" {
		if _, err := pinotlog.ParseLevel(*logLevel); err != nil {
			return err
		}
	}
	return nil
}

var clientConfigMu sync.Mutex

// configuredClientConfigFile remembers the file logging was configured from, so
// connections opened with the same file do not reopen the log output.
var configuredClientConfigFile string

func initClientConfigLogging(clientConfigFile string) error {
	if clientConfigFile == "" {
		clientConfigFile = os.Getenv(clientConfigEnvName)
	}
	if clientConfigFile == "" {
		return nil
	}
	clientConfigMu.Lock()
	defer clientConfigMu.Unlock()
	if configuredClientConfigFile == clientConfigFile {
		return nil
	}
	config, err := parseClientConfiguration(clientConfigFile)
	if err != nil {
		return err
	}
	if config.Common.LogLevel != nil && *config.Common.LogLevel != "" {
		if err = logger.SetLogLevel(*config.Common.LogLevel); err != nil {
			return err
		}
	}
	if config.Common.LogPath != nil && *config.Common.LogPath != "" {
		output, err := createLogWriter(*config.Common.LogPath)
		if err != nil {
			return parsingClientConfigError(err)
		}
		logger.SetOutput(output)
	}
	configuredClientConfigFile = clientConfigFile
	logger.Infof("logging configured from client config %v", clientConfigFile)
	return nil
}

func createLogWriter(logPath string) (io.Writer, error) {
	if strings.EqualFold(logPath, "STDOUT") {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(logPath, 0700); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filepath.Join(logPath, "pinot.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(file, os.Stdout), nil
}
