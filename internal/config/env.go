package config

import (
	"fmt"
	"strconv"
	"strings"
)

// envVar maps one environment variable onto a setting.
type envVar struct {
	name string
	set  func(s *Settings, v string) error
}

func setString(dst func(*Settings) *string) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		*dst(s) = v
		return nil
	}
}

func setFloat(dst func(*Settings) *float64) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*dst(s) = f
		return nil
	}
}

func setInt(dst func(*Settings) *int) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*dst(s) = n
		return nil
	}
}

func setBool(dst func(*Settings) *bool) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*dst(s) = b
		return nil
	}
}

// envVars lists the supported variables. Later entries win, so the
// REDLINE_-prefixed key variables override the provider defaults.
var envVars = []envVar{
	{"OPENAI_API_KEY", setString(func(s *Settings) *string { return &s.OpenAIKey })},
	{"GEMINI_API_KEY", setString(func(s *Settings) *string { return &s.GeminiKey })},
	{"ANTHROPIC_API_KEY", setString(func(s *Settings) *string { return &s.AnthropicKey })},
	{"REDLINE_OPENAI_API_KEY", setString(func(s *Settings) *string { return &s.OpenAIKey })},
	{"REDLINE_GEMINI_API_KEY", setString(func(s *Settings) *string { return &s.GeminiKey })},
	{"REDLINE_ANTHROPIC_API_KEY", setString(func(s *Settings) *string { return &s.AnthropicKey })},
	{"REDLINE_MODEL", setString(func(s *Settings) *string { return &s.Model })},
	{"REDLINE_TEMPERATURE", setFloat(func(s *Settings) *float64 { return &s.Temperature })},
	{"REDLINE_MAX_TOKENS", setInt(func(s *Settings) *int { return &s.MaxTokens })},
	{"REDLINE_DEFAULT_PROMPT", setString(func(s *Settings) *string { return &s.DefaultPromptID })},
	{"REDLINE_LANGUAGE", setString(func(s *Settings) *string { return &s.TranslationLanguage })},
	{"REDLINE_CONTEXT_DYNAMIC", setBool(func(s *Settings) *bool { return &s.Context.Dynamic })},
	{"REDLINE_CONTEXT_LINES", setInt(func(s *Settings) *int { return &s.Context.DynamicLines })},
	{"REDLINE_CONTEXT_WHOLE_NOTE", setBool(func(s *Settings) *bool { return &s.Context.WholeNote })},
	{"REDLINE_LOG_LEVEL", setString(func(s *Settings) *string { return &s.Log.Level })},
	{"REDLINE_LOG_FILE", setString(func(s *Settings) *string { return &s.Log.File })},
	{"REDLINE_DATA_DIR", setString(func(s *Settings) *string { return &s.DataDir })},
}

// applyEnv overlays set environment variables on s. Empty values are
// ignored.
func applyEnv(lookup func(string) (string, bool), s *Settings) error {
	for _, ev := range envVars {
		v, ok := lookup(ev.name)
		if !ok || v == "" {
			continue
		}
		if err := ev.set(s, v); err != nil {
			return fmt.Errorf("environment %s: %w", ev.name, err)
		}
	}
	return nil
}
