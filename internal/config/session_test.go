package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureSessionIdentityCreatesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session_id")

	first, err := EnsureSessionIdentity(path)
	if err != nil {
		t.Fatalf("first EnsureSessionIdentity error: %v", err)
	}
	if first == "" {
		t.Fatal("first call returned empty identity")
	}

	second, err := EnsureSessionIdentity(path)
	if err != nil {
		t.Fatalf("second EnsureSessionIdentity error: %v", err)
	}
	if second != first {
		t.Errorf("second call = %q, want stable %q", second, first)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != first+"\n" {
		t.Errorf("file content = %q, want identity with trailing newline", data)
	}
}

func TestEnsureSessionIdentityReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_id")
	if err := os.WriteFile(path, []byte("  existing-id \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	id, err := EnsureSessionIdentity(path)
	if err != nil {
		t.Fatal(err)
	}
	if id != "existing-id" {
		t.Errorf("id = %q, want trimmed existing-id", id)
	}
}

func TestEnsureSessionIdentityRegeneratesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_id")
	if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	id, err := EnsureSessionIdentity(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(id) == "" {
		t.Error("empty file should yield a fresh identity")
	}
}

func TestSessionIdentityPathOverride(t *testing.T) {
	t.Setenv("CODEX_SESSION_FILE", "/custom/session")
	if got := SessionIdentityPath(); got != "/custom/session" {
		t.Errorf("path = %q, want env override", got)
	}
}
