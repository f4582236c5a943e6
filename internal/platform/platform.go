// Package platform describes the host the driver runs on, for the
// User-Agent header sent to brokers.
package platform

import (
	"bufio"
	"os"
	"runtime"
	"strings"
	"sync"
)

const osReleasePath = "/etc/os-release"

var (
	distribution     string
	distributionOnce sync.Once
)

// Distribution returns the Linux distribution as "ID-VERSION_ID", e.g.
// "ubuntu-22.04". It is empty on other systems or when /etc/os-release is
// missing.
func Distribution() string {
	distributionOnce.Do(func() {
		if runtime.GOOS == "linux" {
			distribution = distributionFrom(osReleasePath)
		}
	})
	return distribution
}

func distributionFrom(path string) string {
	release := readOsRelease(path)
	id := release["ID"]
	if id == "" {
		return ""
	}
	if version := release["VERSION_ID"]; version != "" {
		return id + "-" + version
	}
	return id
}

// readOsRelease returns the KEY=VALUE pairs of an os-release file, or nil
// when it cannot be read.
func readOsRelease(path string) map[string]string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() {
		_ = file.Close()
	}()

	result := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		result[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	return result
}

// unquote returns the content of a value wrapped in single or double quotes,
// ignoring anything after the closing quote.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		if end := strings.IndexByte(s[1:], s[0]); end >= 0 {
			return s[1 : 1+end]
		}
	}
	return s
}
