package providers

import (
	"github.com/janekbaraniewski/usagectl/internal/config"
)

// Claude targets the Anthropic OAuth usage endpoint using the token the
// Claude Code login flow persists locally.
func Claude() Spec {
	return Spec{
		ID:              "claude",
		TokenEnv:        "CLAUDE_CODE_OAUTH_TOKEN",
		CredPathEnv:     "CLAUDE_CREDENTIALS_PATH",
		DefaultCredPath: config.DefaultClaudeCredentialsPath,
		ParseCredFile:   config.ParseClaudeCredentials,
		DefaultBaseURL:  "https://api.anthropic.com",
		BaseURLEnv:      "ANTHROPIC_BASE_URL",
		UsagePath:       "/api/oauth/usage",
		ExtraHeaders: map[string]string{
			"anthropic-beta": "oauth-2025-04-20",
		},
		Summarize: SummarizeClaude,
	}
}
