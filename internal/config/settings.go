// Package config provides layered configuration for redline.
//
// Settings are resolved in order, later layers overriding earlier ones:
//
//  1. Built-in defaults
//  2. The config file (YAML or TOML, chosen by extension)
//  3. A legacy data.json settings file, when configured
//  4. Environment variables (REDLINE_*, plus the provider key variables)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/redline/internal/prompt"
	"github.com/dshills/redline/internal/provider"
)

// Settings is the resolved configuration.
type Settings struct {
	Model            string  `yaml:"model" toml:"model"`
	Temperature      float64 `yaml:"temperature" toml:"temperature"`
	FrequencyPenalty float64 `yaml:"frequency_penalty" toml:"frequency_penalty"`
	PresencePenalty  float64 `yaml:"presence_penalty" toml:"presence_penalty"`
	MaxTokens        int     `yaml:"max_tokens" toml:"max_tokens"`

	OpenAIKey    string `yaml:"openai_api_key" toml:"openai_api_key"`
	GeminiKey    string `yaml:"gemini_api_key" toml:"gemini_api_key"`
	AnthropicKey string `yaml:"anthropic_api_key" toml:"anthropic_api_key"`

	Prompts             []prompt.Prompt `yaml:"prompts" toml:"prompts"`
	DefaultPromptID     string          `yaml:"default_prompt" toml:"default_prompt"`
	TranslationLanguage string          `yaml:"translation_language" toml:"translation_language"`

	Context ContextSettings `yaml:"context" toml:"context"`

	// Inputs longer than these byte counts get a notice that the run may
	// take a while.
	LongInputThreshold     int `yaml:"long_input_threshold" toml:"long_input_threshold"`
	VeryLongInputThreshold int `yaml:"very_long_input_threshold" toml:"very_long_input_threshold"`

	GeminiSafety []provider.SafetySetting `yaml:"gemini_safety" toml:"gemini_safety"`

	Log    LogSettings    `yaml:"log" toml:"log"`
	Review ReviewSettings `yaml:"review" toml:"review"`

	// DataDir holds the run log database.
	DataDir string `yaml:"data_dir" toml:"data_dir"`

	// LegacyFile is a data.json settings file imported after the config
	// file.
	LegacyFile string `yaml:"legacy_file" toml:"legacy_file"`
}

// ContextSettings selects the default context sent with a run.
type ContextSettings struct {
	Dynamic      bool   `yaml:"dynamic" toml:"dynamic"`
	DynamicLines int    `yaml:"dynamic_lines" toml:"dynamic_lines"`
	WholeNote    bool   `yaml:"whole_note" toml:"whole_note"`
	Custom       string `yaml:"custom" toml:"custom"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// ReviewSettings configures the review display. Colors are hex strings.
type ReviewSettings struct {
	AddedColor   string `yaml:"added_color" toml:"added_color"`
	RemovedColor string `yaml:"removed_color" toml:"removed_color"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Model:                  "gpt-4.1-nano",
		Temperature:            0.7,
		MaxTokens:              2048,
		Prompts:                prompt.Defaults(),
		TranslationLanguage:    prompt.DefaultLanguage,
		Context:                ContextSettings{DynamicLines: 3},
		LongInputThreshold:     1500,
		VeryLongInputThreshold: 15000,
		Log:                    LogSettings{Level: "info"},
		Review:                 ReviewSettings{AddedColor: "#2e7d32", RemovedColor: "#c62828"},
		DataDir:                defaultDataDir(),
	}
}

// Params returns the model parameters before per-prompt overrides.
func (s Settings) Params() prompt.Params {
	return prompt.Params{
		Model:            s.Model,
		Temperature:      s.Temperature,
		FrequencyPenalty: s.FrequencyPenalty,
		PresencePenalty:  s.PresencePenalty,
		MaxTokens:        s.MaxTokens,
	}
}

// APIKey returns the key configured for a provider kind.
func (s Settings) APIKey(kind provider.Kind) string {
	switch kind {
	case provider.KindGemini:
		return s.GeminiKey
	case provider.KindAnthropic:
		return s.AnthropicKey
	default:
		return s.OpenAIKey
	}
}

// ContextOptions returns the configured context selection.
func (s Settings) ContextOptions() prompt.ContextOptions {
	return prompt.ContextOptions{
		Custom:       s.Context.Custom,
		Dynamic:      s.Context.Dynamic,
		DynamicLines: s.Context.DynamicLines,
		WholeNote:    s.Context.WholeNote,
	}
}

// Validate reports every invalid setting.
func (s Settings) Validate() error {
	var errs []error

	if s.Model == "" {
		errs = append(errs, errors.New("model is required"))
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %.2f outside [0, 2]", s.Temperature))
	}
	if s.FrequencyPenalty < -2 || s.FrequencyPenalty > 2 {
		errs = append(errs, fmt.Errorf("frequency_penalty %.2f outside [-2, 2]", s.FrequencyPenalty))
	}
	if s.PresencePenalty < -2 || s.PresencePenalty > 2 {
		errs = append(errs, fmt.Errorf("presence_penalty %.2f outside [-2, 2]", s.PresencePenalty))
	}
	if s.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("max_tokens %d is negative", s.MaxTokens))
	}
	if s.Context.DynamicLines < 1 || s.Context.DynamicLines > 21 {
		errs = append(errs, fmt.Errorf("context.dynamic_lines %d outside [1, 21]", s.Context.DynamicLines))
	}
	if s.LongInputThreshold < 0 || s.VeryLongInputThreshold < s.LongInputThreshold {
		errs = append(errs, fmt.Errorf("input thresholds %d/%d are inconsistent", s.LongInputThreshold, s.VeryLongInputThreshold))
	}

	seen := make(map[string]bool, len(s.Prompts))
	for i, p := range s.Prompts {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("prompt %d has no id", i))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("duplicate prompt id %q", p.ID))
		}
		seen[p.ID] = true
		if p.Text == "" {
			errs = append(errs, fmt.Errorf("prompt %q has no text", p.ID))
		}
	}
	if s.DefaultPromptID != "" && !seen[s.DefaultPromptID] {
		errs = append(errs, fmt.Errorf("default_prompt %q does not exist", s.DefaultPromptID))
	}

	return errors.Join(errs...)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "redline.yaml"
	}
	return filepath.Join(dir, "redline", "config.yaml")
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".redline"
	}
	return filepath.Join(dir, "redline")
}
