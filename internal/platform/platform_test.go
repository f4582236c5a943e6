package platform

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleOsRelease = `NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
# comment
   
ID=ubuntu
PRETTY_NAME='Ubuntu 22.04.3 LTS' trailing
BROKEN LINE
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadOsRelease(t *testing.T) {
	result := readOsRelease(writeFile(t, sampleOsRelease))
	expected := map[string]string{
		"NAME":        "Ubuntu",
		"VERSION_ID":  "22.04",
		"VERSION":     "22.04.3 LTS (Jammy Jellyfish)",
		"ID":          "ubuntu",
		"PRETTY_NAME": "Ubuntu 22.04.3 LTS",
	}
	if len(result) != len(expected) {
		t.Fatalf("expected %d entries, got %d: %v", len(expected), len(result), result)
	}
	for key, value := range expected {
		if result[key] != value {
			t.Errorf("key %q: expected %q, got %q", key, value, result[key])
		}
	}
}

func TestDistributionFrom(t *testing.T) {
	if got := distributionFrom(writeFile(t, sampleOsRelease)); got != "ubuntu-22.04" {
		t.Errorf("expected ubuntu-22.04, got %q", got)
	}
	if got := distributionFrom(writeFile(t, "ID=arch\n")); got != "arch" {
		t.Errorf("expected arch, got %q", got)
	}
	if got := distributionFrom(writeFile(t, "NAME=unknown\n")); got != "" {
		t.Errorf("expected no distribution, got %q", got)
	}
	if got := distributionFrom(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Errorf("expected no distribution for a missing file, got %q", got)
	}
}
