// Package core defines the normalized usage types and the uniform JSON
// envelope every usagectl invocation prints to stdout.
package core

import (
	"github.com/samber/lo"
)

// Window names used in normalized summaries.
const (
	WindowFiveHour       = "five_hour"
	WindowSevenDay       = "seven_day"
	WindowSevenDaySonnet = "seven_day_sonnet"
	WindowPrimary        = "primary"
	WindowSecondary      = "secondary"
)

// UsageWindow is one rate-limit window as reported upstream. Both fields are
// optional: a missing field stays nil rather than defaulting.
type UsageWindow struct {
	Utilization *float64 `json:"utilization"`
	ResetsAt    *string  `json:"resets_at"`
}

// WindowSummary is the normalized form of a window. Members serialize as
// explicit nulls when the upstream payload did not carry them, so a partial
// payload still yields a complete summary shape.
type WindowSummary struct {
	ResetsAt    *string  `json:"resets_at"`
	PercentLeft *float64 `json:"percent_left"`
}

// Envelope is the single JSON object printed per invocation. OK is the
// authoritative success discriminator; on failure Error is set and, for
// upstream failures, ResponseBody carries the offending body verbatim.
type Envelope struct {
	OK           bool   `json:"ok"`
	Usage        any    `json:"usage,omitempty"`
	Summary      any    `json:"summary,omitempty"`
	Error        string `json:"error,omitempty"`
	ResponseBody string `json:"response_body,omitempty"`
}

// PercentLeft converts an upstream utilization percentage into remaining
// percent, clamped into [0,100] even for malformed out-of-range input.
func PercentLeft(utilization float64) float64 {
	return lo.Clamp(100-utilization, 0, 100)
}
