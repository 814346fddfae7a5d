package main

import (
	"github.com/caarlos0/env/v10"
)

// Env is the process environment the CLI understands.
type Env struct {
	OpenAIKey    string `env:"OPENAI_API_KEY"`
	GeminiKey    string `env:"GEMINI_API_KEY"`
	GoogleKey    string `env:"GOOGLE_API_KEY"`
	SettingsPath string `env:"AITOOLS_SETTINGS"`
	LogLevel     string `env:"AITOOLS_LOG_LEVEL" envDefault:"info"`
}

// loadEnv parses environ, or the process environment when environ is nil.
func loadEnv(environ map[string]string) (Env, error) {
	var e Env
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return Env{}, err
	}
	return e, nil
}

// LookupEnv resolves the provider key variables from the parsed struct. It
// satisfies assistant.LookupEnvFunc; empty values count as unset.
func (e Env) LookupEnv(key string) (string, bool) {
	var v string
	switch key {
	case "OPENAI_API_KEY":
		v = e.OpenAIKey
	case "GEMINI_API_KEY":
		v = e.GeminiKey
	case "GOOGLE_API_KEY":
		v = e.GoogleKey
	}
	return v, v != ""
}
