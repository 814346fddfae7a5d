//go:build noopenai

package assistant

// Built without the OpenAI SDK: the openai provider reports
// DependencyUnavailableError at construction.
func registerSDKProviders(*Registry) {}
