// Package providers implements the shared credential → request → summary
// pipeline, parameterized by a per-provider Spec record instead of being
// re-implemented per provider.
package providers

import (
	"os"
	"strings"

	"github.com/janekbaraniewski/usagectl/internal/config"
	"github.com/janekbaraniewski/usagectl/internal/core"
)

// Spec is the per-provider configuration record driving the pipeline: which
// env vars to consult, where the credential file lives, which origin and
// path to hit, and which headers to send.
type Spec struct {
	ID string

	// Credential resolution.
	TokenEnv        string
	AccountIDEnvs   []string // non-empty: an account id is required with TokenEnv
	CredPathEnv     string
	DefaultCredPath func() string
	ParseCredFile   func(data []byte, path string) (config.Credential, error)

	// Request.
	DefaultBaseURL  string
	BaseURLEnv      string
	UsagePath       string
	ExtraHeaders    map[string]string
	AccountIDHeader string

	// Normalization of the raw 2xx payload.
	Summarize func(raw []byte) any
}

// ResolveCredential produces the provider credential. Environment
// credentials, when present, shadow the file entirely; sources never merge.
func (s Spec) ResolveCredential() (config.Credential, error) {
	if token := strings.TrimSpace(os.Getenv(s.TokenEnv)); token != "" {
		cred := config.Credential{Token: token}
		if len(s.AccountIDEnvs) > 0 {
			cred.AccountID = firstEnv(s.AccountIDEnvs)
			if cred.AccountID == "" {
				return config.Credential{}, core.Credentialf(
					"%s is set but no account id found in %s",
					s.TokenEnv, strings.Join(s.AccountIDEnvs, " or "))
			}
		}
		return cred, nil
	}

	path := s.credentialsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Credential{}, core.Credentialf(
			"%s not set and credentials file %s unreadable: %v", s.TokenEnv, path, err)
	}
	return s.ParseCredFile(data, path)
}

func (s Spec) credentialsPath() string {
	if p := strings.TrimSpace(os.Getenv(s.CredPathEnv)); p != "" {
		return p
	}
	return s.DefaultCredPath()
}

// BaseURL resolves the request origin: env override or compiled-in default,
// trailing slash stripped.
func (s Spec) BaseURL() string {
	base := s.DefaultBaseURL
	if v := strings.TrimSpace(os.Getenv(s.BaseURLEnv)); v != "" {
		base = v
	}
	return strings.TrimRight(base, "/")
}

func (s Spec) usageURL() string {
	return s.BaseURL() + s.UsagePath
}

func firstEnv(names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
