package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DICEPOOL_TEST_FROM_FILE=7\nDICEPOOL_TEST_KEEP=file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DICEPOOL_TEST_KEEP", "process")
	t.Setenv("DICEPOOL_TEST_FROM_FILE", "")
	os.Unsetenv("DICEPOOL_TEST_FROM_FILE")

	if err := LoadDotEnv(path, true); err != nil {
		t.Fatalf("load env: %v", err)
	}
	if got := os.Getenv("DICEPOOL_TEST_FROM_FILE"); got != "7" {
		t.Fatalf("DICEPOOL_TEST_FROM_FILE = %q, want 7", got)
	}
	if got := os.Getenv("DICEPOOL_TEST_KEEP"); got != "process" {
		t.Fatalf("DICEPOOL_TEST_KEEP = %q, want process", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	if err := LoadDotEnv(missing, false); err != nil {
		t.Fatalf("optional missing file: %v", err)
	}
	err := LoadDotEnv(missing, true)
	if err == nil || !strings.Contains(err.Error(), "load env file") {
		t.Fatalf("required missing file error = %v", err)
	}
	if err := LoadDotEnv("", true); err != nil {
		t.Fatalf("empty path: %v", err)
	}
}
