// Package model holds per-call generation parameters.
package model

// Chat defaults applied when the caller does not override them.
const (
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.7
)

// Summary parameters. Summaries always use these, whatever the caller's chat
// options are.
const (
	SummaryMaxTokens   = 300
	SummaryTemperature = 0.3
)

// Params holds the generation settings for a single request.
type Params struct {
	MaxTokens   int
	Temperature float64
}

// Defaults returns the chat defaults.
func Defaults() Params {
	return Params{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature}
}

// Summary returns the fixed summary parameters.
func Summary() Params {
	return Params{MaxTokens: SummaryMaxTokens, Temperature: SummaryTemperature}
}
