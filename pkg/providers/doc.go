// Package providers groups the LLM backends the assistant can talk to.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/aitools/pkg/providers/provider]: Strategy interface, Kind enum, Config and the error taxonomy
//   - [github.com/germanamz/aitools/pkg/providers/model]: per-call generation parameters (max tokens, temperature)
//   - [github.com/germanamz/aitools/pkg/providers/openai]: Strategy over the OpenAI Chat Completions SDK
//   - [github.com/germanamz/aitools/pkg/providers/gemini]: Strategy over the Gemini generateText REST endpoint
//
// Strategies are selected once, when a client is built, never per call.
package providers
