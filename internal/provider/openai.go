package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/dshills/redline/internal/logging"
)

// OpenAI generates text with the OpenAI chat completions API.
type OpenAI struct {
	client openai.Client
	log    zerolog.Logger
}

// NewOpenAI creates an OpenAI generator. Extra options (base URL, HTTP
// client, retries) are passed to the SDK.
func NewOpenAI(apiKey string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrNoAPIKey)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{
		client: openai.NewClient(opts...),
		log:    logging.Component("openai"),
	}, nil
}

// Generate implements Generator.
func (p *OpenAI) Generate(ctx context.Context, req Request) (Response, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature:         openai.Float(req.Temperature),
		FrequencyPenalty:    openai.Float(req.FrequencyPenalty),
		PresencePenalty:     openai.Float(req.PresencePenalty),
		MaxCompletionTokens: openai.Int(int64(clampTokens(req.Model, req.MaxTokens))),
	}

	p.log.Debug().Str("model", req.Model).Int("chars", len(req.User)).Msg("chat completion")

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	choice := resp.Choices[0]
	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	return Response{
		NewText:      choice.Message.Content,
		IsOverlength: choice.FinishReason == "length",
		Cost:         EstimateCost(req.Model, usage),
		Usage:        usage,
		Model:        req.Model,
	}, nil
}
