package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/dshills/redline/internal/logging"
)

// SafetySetting sets the block threshold for one harm category.
// Category is one of harassment, hate_speech, sexually_explicit,
// dangerous_content; Threshold one of none, only_high, medium_and_above,
// low_and_above.
type SafetySetting struct {
	Category  string `yaml:"category" toml:"category" json:"category"`
	Threshold string `yaml:"threshold" toml:"threshold" json:"threshold"`
}

var harmCategories = map[string]genai.HarmCategory{
	"harassment":        genai.HarmCategoryHarassment,
	"hate_speech":       genai.HarmCategoryHateSpeech,
	"sexually_explicit": genai.HarmCategorySexuallyExplicit,
	"dangerous_content": genai.HarmCategoryDangerousContent,
}

var harmThresholds = map[string]genai.HarmBlockThreshold{
	"none":             genai.HarmBlockNone,
	"only_high":        genai.HarmBlockOnlyHigh,
	"medium_and_above": genai.HarmBlockMediumAndAbove,
	"low_and_above":    genai.HarmBlockLowAndAbove,
}

// safetySettings converts configured settings to the SDK form.
func safetySettings(in []SafetySetting) ([]*genai.SafetySetting, error) {
	out := make([]*genai.SafetySetting, 0, len(in))
	for _, s := range in {
		cat, ok := harmCategories[strings.ToLower(s.Category)]
		if !ok {
			return nil, fmt.Errorf("gemini: unknown harm category %q", s.Category)
		}
		th, ok := harmThresholds[strings.ToLower(s.Threshold)]
		if !ok {
			return nil, fmt.Errorf("gemini: unknown block threshold %q", s.Threshold)
		}
		out = append(out, &genai.SafetySetting{Category: cat, Threshold: th})
	}
	return out, nil
}

// Gemini generates text with the Gemini API.
type Gemini struct {
	client *genai.Client
	safety []*genai.SafetySetting
	log    zerolog.Logger
}

// NewGemini creates a Gemini generator. Close releases the client.
func NewGemini(ctx context.Context, apiKey string, safety []SafetySetting, opts ...option.ClientOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNoAPIKey)
	}
	ss, err := safetySettings(safety)
	if err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &Gemini{client: client, safety: ss, log: logging.Component("gemini")}, nil
}

// Close closes the underlying client.
func (p *Gemini) Close() error {
	return p.client.Close()
}

// Generate implements Generator.
func (p *Gemini) Generate(ctx context.Context, req Request) (Response, error) {
	model := p.client.GenerativeModel(ResolveModel(req.Model))
	model.SetTemperature(float32(req.Temperature))
	model.SetMaxOutputTokens(int32(clampTokens(req.Model, req.MaxTokens)))
	model.SafetySettings = p.safety
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	p.log.Debug().Str("model", req.Model).Int("chars", len(req.User)).Msg("generate content")

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return Response{}, fmt.Errorf("gemini: %w", err)
	}
	return geminiResponse(req.Model, resp), nil
}

// geminiResponse extracts the text of the first candidate.
func geminiResponse(model string, resp *genai.GenerateContentResponse) Response {
	out := Response{Model: model}
	if resp == nil {
		return out
	}
	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		if cand.Content != nil {
			var b strings.Builder
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					b.WriteString(string(t))
				}
			}
			out.NewText = b.String()
		}
		out.IsOverlength = cand.FinishReason == genai.FinishReasonMaxTokens
	}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	out.Cost = EstimateCost(model, out.Usage)
	return out
}
