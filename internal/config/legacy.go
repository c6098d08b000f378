package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/redline/internal/prompt"
)

// importLegacyFile overlays a data.json settings file on s.
func importLegacyFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading legacy settings %s: %w", path, err)
	}
	if err := ImportLegacy(data, s); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// ImportLegacy overlays the fields present in a data.json settings
// document on s.
func ImportLegacy(data []byte, s *Settings) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON")
	}
	doc := gjson.ParseBytes(data)

	str := func(key string, dst *string) {
		if v := doc.Get(key); v.Exists() {
			*dst = v.String()
		}
	}
	num := func(key string, dst *float64) {
		if v := doc.Get(key); v.Exists() {
			*dst = v.Float()
		}
	}
	integer := func(key string, dst *int) {
		if v := doc.Get(key); v.Exists() {
			*dst = int(v.Int())
		}
	}

	str("openAiApiKey", &s.OpenAIKey)
	str("geminiApiKey", &s.GeminiKey)
	str("model", &s.Model)
	str("defaultPromptId", &s.DefaultPromptID)
	str("translationLanguage", &s.TranslationLanguage)
	integer("dynamicContextLineCount", &s.Context.DynamicLines)
	integer("longInputThreshold", &s.LongInputThreshold)
	integer("veryLongInputThreshold", &s.VeryLongInputThreshold)
	num("temperature", &s.Temperature)
	num("frequency_penalty", &s.FrequencyPenalty)
	num("presence_penalty", &s.PresencePenalty)
	integer("max_tokens", &s.MaxTokens)

	if prompts := doc.Get("prompts"); prompts.IsArray() {
		var out []prompt.Prompt
		prompts.ForEach(func(_, v gjson.Result) bool {
			out = append(out, legacyPrompt(v))
			return true
		})
		s.Prompts = out
	}
	return nil
}

func legacyPrompt(v gjson.Result) prompt.Prompt {
	p := prompt.Prompt{
		ID:            v.Get("id").String(),
		Name:          v.Get("name").String(),
		Text:          v.Get("text").String(),
		IsDefault:     v.Get("isDefault").Bool(),
		Enabled:       v.Get("enabled").Bool(),
		ShowInPalette: v.Get("showInPromptPalette").Bool(),
		Model:         v.Get("model").String(),
	}
	if f := v.Get("temperature"); f.Exists() {
		t := f.Float()
		p.Temperature = &t
	}
	if f := v.Get("frequency_penalty"); f.Exists() {
		t := f.Float()
		p.FrequencyPenalty = &t
	}
	if f := v.Get("presence_penalty"); f.Exists() {
		t := f.Float()
		p.PresencePenalty = &t
	}
	if f := v.Get("max_tokens"); f.Exists() {
		n := int(f.Int())
		p.MaxTokens = &n
	}
	return p
}

// ExportLegacy writes s as a data.json settings document. API keys are
// never exported.
func ExportLegacy(s Settings) ([]byte, error) {
	data := []byte(`{}`)
	fields := []struct {
		key string
		val any
	}{
		{"openAiApiKey", ""},
		{"geminiApiKey", ""},
		{"model", s.Model},
		{"defaultPromptId", s.DefaultPromptID},
		{"alwaysShowPromptSelection", false},
		{"dynamicContextLineCount", s.Context.DynamicLines},
		{"translationLanguage", s.TranslationLanguage},
		{"longInputThreshold", s.LongInputThreshold},
		{"veryLongInputThreshold", s.VeryLongInputThreshold},
		{"temperature", s.Temperature},
		{"frequency_penalty", s.FrequencyPenalty},
		{"presence_penalty", s.PresencePenalty},
		{"max_tokens", s.MaxTokens},
	}

	var err error
	for _, f := range fields {
		if data, err = sjson.SetBytes(data, f.key, f.val); err != nil {
			return nil, fmt.Errorf("export %s: %w", f.key, err)
		}
	}
	if data, err = sjson.SetBytes(data, "prompts", []any{}); err != nil {
		return nil, err
	}
	for _, p := range s.Prompts {
		if data, err = sjson.SetBytes(data, "prompts.-1", p); err != nil {
			return nil, fmt.Errorf("export prompt %s: %w", p.ID, err)
		}
	}
	return data, nil
}
