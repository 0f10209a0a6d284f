// Package config reads the locally persisted credential files written by the
// vendor login flows and manages the session identity file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/janekbaraniewski/usagectl/internal/core"
)

// Credential is a resolved provider credential. Token is always non-empty
// after successful resolution; AccountID is set only for providers that
// require one.
type Credential struct {
	Token     string
	AccountID string
}

const codexHomeEnv = "CODEX_HOME"

// DefaultClaudeCredentialsPath is where the Claude login flow persists its
// OAuth credentials.
func DefaultClaudeCredentialsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", ".credentials.json")
}

// DefaultCodexAuthPath is where the Codex CLI persists auth.json, honoring
// the CODEX_HOME override the CLI itself recognizes.
func DefaultCodexAuthPath() string {
	dir := strings.TrimSpace(os.Getenv(codexHomeEnv))
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".codex")
	}
	return filepath.Join(dir, "auth.json")
}

type claudeCredentialsFile struct {
	ClaudeAiOauth *claudeOAuth `json:"claudeAiOauth"`
}

type claudeOAuth struct {
	AccessToken string `json:"accessToken"`
}

// ParseClaudeCredentials extracts the OAuth access token from the Claude
// credentials file. Failure messages name the exact file consulted.
func ParseClaudeCredentials(data []byte, path string) (Credential, error) {
	var creds claudeCredentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credential{}, core.Credentialf("parsing credentials file %s: %v", path, err)
	}
	if creds.ClaudeAiOauth == nil {
		return Credential{}, core.Credentialf("credentials file %s has no claudeAiOauth section", path)
	}
	token := strings.TrimSpace(creds.ClaudeAiOauth.AccessToken)
	if token == "" {
		return Credential{}, core.Credentialf("credentials file %s has no claudeAiOauth.accessToken", path)
	}
	return Credential{Token: token}, nil
}

// codexAuthFile mirrors ~/.codex/auth.json. The account id historically
// appears either inside tokens or at the top level.
type codexAuthFile struct {
	AccountID string      `json:"account_id"`
	Tokens    codexTokens `json:"tokens"`
}

type codexTokens struct {
	AccessToken string `json:"access_token"`
	AccountID   string `json:"account_id"`
}

// ParseCodexAuth extracts the access token and account id from the Codex
// auth file; both are required for the direct usage endpoint.
func ParseCodexAuth(data []byte, path string) (Credential, error) {
	var auth codexAuthFile
	if err := json.Unmarshal(data, &auth); err != nil {
		return Credential{}, core.Credentialf("parsing auth file %s: %v", path, err)
	}
	token := strings.TrimSpace(auth.Tokens.AccessToken)
	if token == "" {
		return Credential{}, core.Credentialf("auth file %s has no tokens.access_token", path)
	}
	accountID := strings.TrimSpace(auth.Tokens.AccountID)
	if accountID == "" {
		accountID = strings.TrimSpace(auth.AccountID)
	}
	if accountID == "" {
		return Credential{}, core.Credentialf("auth file %s has no account id", path)
	}
	return Credential{Token: token, AccountID: accountID}, nil
}
