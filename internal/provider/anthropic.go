package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/dshills/redline/internal/logging"
)

// Anthropic generates text with the Anthropic messages API.
type Anthropic struct {
	client anthropic.Client
	log    zerolog.Logger
}

// NewAnthropic creates an Anthropic generator.
func NewAnthropic(apiKey string, opts ...option.RequestOption) (*Anthropic, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrNoAPIKey)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		log:    logging.Component("anthropic"),
	}, nil
}

// Generate implements Generator. The messages API has no frequency or
// presence penalty; those settings are ignored.
func (p *Anthropic) Generate(ctx context.Context, req Request) (Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(clampTokens(req.Model, req.MaxTokens)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		Temperature: anthropic.Float(min(req.Temperature, 1)),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	p.log.Debug().Str("model", req.Model).Int("chars", len(req.User)).Msg("messages")

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("anthropic: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	usage := Usage{
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
	}
	return Response{
		NewText:      b.String(),
		IsOverlength: msg.StopReason == anthropic.StopReasonMaxTokens,
		Cost:         EstimateCost(req.Model, usage),
		Usage:        usage,
		Model:        req.Model,
	}, nil
}
