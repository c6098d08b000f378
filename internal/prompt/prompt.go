// Package prompt holds the transformation prompts and assembles the
// messages and context sent to the model.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by prompt selection.
var (
	// ErrNoPrompt indicates no prompt is available.
	ErrNoPrompt = errors.New("no prompt for text transformation")

	// ErrUnknownPrompt indicates a prompt id that does not exist.
	ErrUnknownPrompt = errors.New("unknown prompt")
)

// TranslateID is the id of the translation prompt, whose text carries the
// {language} placeholder.
const TranslateID = "translate"

// Prompt is one transformation instruction with optional per-prompt
// overrides of the model parameters.
type Prompt struct {
	ID            string `yaml:"id" toml:"id" json:"id"`
	Name          string `yaml:"name" toml:"name" json:"name"`
	Text          string `yaml:"text" toml:"text" json:"text"`
	IsDefault     bool   `yaml:"is_default" toml:"is_default" json:"isDefault"`
	Enabled       bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	ShowInPalette bool   `yaml:"show_in_palette" toml:"show_in_palette" json:"showInPromptPalette"`

	Model            string   `yaml:"model,omitempty" toml:"model,omitempty" json:"model,omitempty"`
	Temperature      *float64 `yaml:"temperature,omitempty" toml:"temperature,omitempty" json:"temperature,omitempty"`
	FrequencyPenalty *float64 `yaml:"frequency_penalty,omitempty" toml:"frequency_penalty,omitempty" json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `yaml:"presence_penalty,omitempty" toml:"presence_penalty,omitempty" json:"presence_penalty,omitempty"`
	MaxTokens        *int     `yaml:"max_tokens,omitempty" toml:"max_tokens,omitempty" json:"max_tokens,omitempty"`
}

// Params are the model parameters of a generation call.
type Params struct {
	Model            string
	Temperature      float64
	FrequencyPenalty float64
	PresencePenalty  float64
	MaxTokens        int
}

// Apply returns base with the prompt's overrides applied.
func (p Prompt) Apply(base Params) Params {
	if p.Model != "" {
		base.Model = p.Model
	}
	if p.Temperature != nil {
		base.Temperature = *p.Temperature
	}
	if p.FrequencyPenalty != nil {
		base.FrequencyPenalty = *p.FrequencyPenalty
	}
	if p.PresencePenalty != nil {
		base.PresencePenalty = *p.PresencePenalty
	}
	if p.MaxTokens != nil {
		base.MaxTokens = *p.MaxTokens
	}
	return base
}

// Prepare returns the prompt ready to send. The translation prompt gets
// its {language} placeholder filled.
func (p Prompt) Prepare(language string) Prompt {
	if p.ID != TranslateID {
		return p
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = "target language"
	}
	p.Text = strings.ReplaceAll(p.Text, "{language}", language)
	return p
}

// Select picks the prompt to run: the one named by id, else the one named
// by defaultID, else the first enabled prompt, else the first prompt.
func Select(prompts []Prompt, id, defaultID string) (Prompt, error) {
	if id != "" {
		if p, ok := find(prompts, id); ok {
			return p, nil
		}
		return Prompt{}, fmt.Errorf("%w: %s", ErrUnknownPrompt, id)
	}
	if defaultID != "" {
		if p, ok := find(prompts, defaultID); ok {
			return p, nil
		}
	}
	for _, p := range prompts {
		if p.Enabled {
			return p, nil
		}
	}
	if len(prompts) > 0 {
		return prompts[0], nil
	}
	return Prompt{}, ErrNoPrompt
}

func find(prompts []Prompt, id string) (Prompt, bool) {
	for _, p := range prompts {
		if p.ID == id {
			return p, true
		}
	}
	return Prompt{}, false
}

// Compose builds the system and user messages for a run. The prompt text
// is the system instruction; the user message carries the optional context
// block followed by the text to transform.
func Compose(p Prompt, text, context string) (system, user string) {
	if context == "" {
		return p.Text, text
	}
	var b strings.Builder
	b.WriteString("Additional context:\n")
	b.WriteString(context)
	b.WriteString("\n\n--- Text to transform ---\n")
	b.WriteString(text)
	return p.Text, b.String()
}
