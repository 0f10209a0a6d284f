package providers

import (
	"github.com/janekbaraniewski/usagectl/internal/config"
)

// Codex targets the ChatGPT backend usage endpoint directly. An env-supplied
// token must come with an account id from one of the alternate variables;
// the auth file carries both.
func Codex() Spec {
	return Spec{
		ID:              "codex",
		TokenEnv:        "CODEX_ACCESS_TOKEN",
		AccountIDEnvs:   []string{"CHATGPT_ACCOUNT_ID", "CODEX_ACCOUNT_ID"},
		CredPathEnv:     "CODEX_AUTH_PATH",
		DefaultCredPath: config.DefaultCodexAuthPath,
		ParseCredFile:   config.ParseCodexAuth,
		DefaultBaseURL:  "https://chatgpt.com/backend-api",
		BaseURLEnv:      "CHATGPT_BASE_URL",
		UsagePath:       "/wham/usage",
		AccountIDHeader: "ChatGPT-Account-Id",
		Summarize:       SummarizeCodex,
	}
}
