package providers

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/janekbaraniewski/usagectl/internal/core"
)

// claudeUsage is the subset of the Claude usage payload the normalizer
// understands. Extraction is best-effort: anything that does not match this
// shape leaves the corresponding summary members null.
type claudeUsage struct {
	FiveHour       *core.UsageWindow `json:"five_hour"`
	SevenDay       *core.UsageWindow `json:"seven_day"`
	SevenDaySonnet *core.UsageWindow `json:"seven_day_sonnet"`
}

// SummarizeClaude converts the raw payload into the canonical window
// summary. It never fails: a payload of the wrong shape yields a summary
// with null members, and the raw JSON is echoed to the caller regardless.
func SummarizeClaude(raw []byte) any {
	var usage claudeUsage
	_ = json.Unmarshal(raw, &usage)

	summary := map[string]core.WindowSummary{
		core.WindowFiveHour: summarizeWindow(usage.FiveHour),
		core.WindowSevenDay: summarizeWindow(usage.SevenDay),
	}
	if usage.SevenDaySonnet != nil {
		summary[core.WindowSevenDaySonnet] = summarizeWindow(usage.SevenDaySonnet)
	}
	return summary
}

func summarizeWindow(w *core.UsageWindow) core.WindowSummary {
	if w == nil {
		return core.WindowSummary{}
	}
	out := core.WindowSummary{ResetsAt: w.ResetsAt}
	if w.Utilization != nil {
		out.PercentLeft = lo.ToPtr(core.PercentLeft(*w.Utilization))
	}
	return out
}

// codexRateLimit locates the two named windows inside the Codex payload.
type codexRateLimit struct {
	RateLimit struct {
		PrimaryWindow   json.RawMessage `json:"primary_window"`
		SecondaryWindow json.RawMessage `json:"secondary_window"`
	} `json:"rate_limit"`
}

// SummarizeCodex echoes rate_limit.primary_window and
// rate_limit.secondary_window verbatim, with an explicit null for a missing
// window rather than omitting the key.
func SummarizeCodex(raw []byte) any {
	var payload codexRateLimit
	_ = json.Unmarshal(raw, &payload)

	return map[string]json.RawMessage{
		core.WindowPrimary:   rawOrNull(payload.RateLimit.PrimaryWindow),
		core.WindowSecondary: rawOrNull(payload.RateLimit.SecondaryWindow),
	}
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
