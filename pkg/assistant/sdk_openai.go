//go:build !noopenai

package assistant

import (
	"github.com/germanamz/aitools/pkg/providers/openai"
	"github.com/germanamz/aitools/pkg/providers/provider"
)

func registerSDKProviders(r *Registry) {
	r.Register(provider.OpenAI, newOpenAI)
}

func newOpenAI(p FactoryParams) (provider.Strategy, error) {
	return openai.New(p.BaseURL, p.Config.APIKey, p.Config.Model, p.HTTPClient), nil
}
