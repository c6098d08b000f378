package provider

import (
	"sort"
	"strings"
)

// Kind identifies a model provider.
type Kind string

const (
	KindOpenAI    Kind = "openai"
	KindGemini    Kind = "gemini"
	KindAnthropic Kind = "anthropic"
)

// ModelSpec describes a supported model.
type ModelSpec struct {
	ID              string
	DisplayName     string
	Kind            Kind
	MaxOutputTokens int

	// Prices in USD per million tokens.
	InputPrice  float64
	OutputPrice float64
}

// Cost estimates the price of a call.
func (m ModelSpec) Cost(u Usage) float64 {
	return (float64(u.InputTokens)*m.InputPrice + float64(u.OutputTokens)*m.OutputPrice) / 1e6
}

var models = map[string]ModelSpec{
	"gpt-4.1": {
		ID: "gpt-4.1", DisplayName: "GPT 4.1", Kind: KindOpenAI,
		MaxOutputTokens: 32768, InputPrice: 2.0, OutputPrice: 8.0,
	},
	"gpt-4.1-mini": {
		ID: "gpt-4.1-mini", DisplayName: "GPT 4.1 mini", Kind: KindOpenAI,
		MaxOutputTokens: 32768, InputPrice: 0.4, OutputPrice: 1.6,
	},
	"gpt-4.1-nano": {
		ID: "gpt-4.1-nano", DisplayName: "GPT 4.1 nano", Kind: KindOpenAI,
		MaxOutputTokens: 32768, InputPrice: 0.1, OutputPrice: 0.4,
	},
	"gemini-2.5-flash-preview-04-17": {
		ID: "gemini-2.5-flash-preview-04-17", DisplayName: "Gemini 2.5 Flash", Kind: KindGemini,
		MaxOutputTokens: 8192, InputPrice: 0.5, OutputPrice: 1.5,
	},
	"gemini-2.5-pro-preview-05-06": {
		ID: "gemini-2.5-pro-preview-05-06", DisplayName: "Gemini 2.5 Pro", Kind: KindGemini,
		MaxOutputTokens: 8192, InputPrice: 3.5, OutputPrice: 10.5,
	},
	"claude-haiku-4-5": {
		ID: "claude-haiku-4-5", DisplayName: "Claude Haiku 4.5", Kind: KindAnthropic,
		MaxOutputTokens: 64000, InputPrice: 1.0, OutputPrice: 5.0,
	},
	"claude-sonnet-4-5": {
		ID: "claude-sonnet-4-5", DisplayName: "Claude Sonnet 4.5", Kind: KindAnthropic,
		MaxOutputTokens: 64000, InputPrice: 3.0, OutputPrice: 15.0,
	},
}

// geminiAliases maps short Gemini names to the versioned model id.
var geminiAliases = map[string]string{
	"gemini-2.5-pro":   "gemini-2.5-pro-preview-05-06",
	"gemini-2.5-flash": "gemini-2.5-flash-preview-04-17",
}

// ResolveModel returns the canonical id for a model name.
func ResolveModel(name string) string {
	if id, ok := geminiAliases[name]; ok {
		return id
	}
	return name
}

// Lookup returns the spec of a model, resolving aliases.
func Lookup(name string) (ModelSpec, bool) {
	spec, ok := models[ResolveModel(name)]
	return spec, ok
}

// KindOf returns the provider serving a model name. Unknown names are
// routed by prefix and default to OpenAI.
func KindOf(name string) Kind {
	if spec, ok := Lookup(name); ok {
		return spec.Kind
	}
	switch {
	case strings.HasPrefix(name, "gemini-"):
		return KindGemini
	case strings.HasPrefix(name, "claude-"):
		return KindAnthropic
	default:
		return KindOpenAI
	}
}

// Models returns every known model sorted by id.
func Models() []ModelSpec {
	out := make([]ModelSpec, 0, len(models))
	for _, m := range models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EstimateCost prices usage for a model. Unknown models cost zero.
func EstimateCost(model string, u Usage) float64 {
	spec, ok := Lookup(model)
	if !ok {
		return 0
	}
	return spec.Cost(u)
}
