package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/janekbaraniewski/usagectl/internal/core"
)

const sessionFileEnv = "CODEX_SESSION_FILE"

// SessionIdentityPath resolves the session identity file: the env override
// when set, otherwise a computed default under the current workspace.
func SessionIdentityPath() string {
	if p := strings.TrimSpace(os.Getenv(sessionFileEnv)); p != "" {
		return p
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return filepath.Join(wd, ".usagectl", "session_id")
}

// EnsureSessionIdentity returns the stable session identifier stored at
// path, generating and persisting a fresh v4 identifier on first use.
// A concurrent create race resolves last-writer-wins; the file is never
// left corrupt.
func EnsureSessionIdentity(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
		// empty file: fall through and regenerate
	case !os.IsNotExist(err):
		return "", core.IOf("reading session file %s: %v", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", core.IOf("creating session dir %s: %v", dir, err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", core.IOf("writing session file %s: %v", path, err)
	}
	return id, nil
}
