// Package provider wraps the language model APIs that generate revised
// text. Every backend implements Generator; Router picks one by model name.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// Errors returned by providers.
var (
	// ErrNoAPIKey indicates the provider has no API key configured.
	ErrNoAPIKey = errors.New("no API key configured")

	// ErrNoProvider indicates no generator is registered for a model.
	ErrNoProvider = errors.New("no provider for model")

	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("model did not return new text")
)

// Request is one text generation call.
type Request struct {
	Model  string
	System string
	User   string

	Temperature      float64
	FrequencyPenalty float64
	PresencePenalty  float64
	MaxTokens        int
}

// Usage counts tokens billed for a call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Response is the result of a generation call.
type Response struct {
	NewText string

	// IsOverlength is set when the model stopped at its output limit, so
	// the text may be truncated.
	IsOverlength bool

	// Cost is the estimated price of the call in USD.
	Cost float64

	Usage Usage
	Model string
}

// Generator produces revised text for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (Response, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Router dispatches requests to the generator registered for the model's
// provider kind.
type Router struct {
	generators map[Kind]Generator
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{generators: make(map[Kind]Generator)}
}

// Register sets the generator for a provider kind.
func (r *Router) Register(kind Kind, g Generator) {
	r.generators[kind] = g
}

// Generate routes req by KindOf(req.Model).
func (r *Router) Generate(ctx context.Context, req Request) (Response, error) {
	kind := KindOf(req.Model)
	g, ok := r.generators[kind]
	if !ok {
		return Response{}, fmt.Errorf("%w: %s (%s)", ErrNoProvider, req.Model, kind)
	}
	return g.Generate(ctx, req)
}

// clampTokens limits n to the model's output limit. Zero means the model
// limit; unknown models fall back to defaultMaxTokens.
func clampTokens(model string, n int) int {
	spec, ok := Lookup(model)
	if !ok {
		if n <= 0 {
			return defaultMaxTokens
		}
		return n
	}
	if n <= 0 || n > spec.MaxOutputTokens {
		return spec.MaxOutputTokens
	}
	return n
}

const defaultMaxTokens = 2048
