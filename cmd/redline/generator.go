package main

import (
	"context"
	"fmt"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/provider"
)

// generatorFactory is replaced in tests.
var generatorFactory = newGenerator

// newGenerator registers a backend for every provider with a key. Kinds
// without a key answer with provider.ErrNoAPIKey so the error names the
// missing setting.
func newGenerator(ctx context.Context, s config.Settings) (provider.Generator, func(), error) {
	router := provider.NewRouter()
	closers := []func(){}
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, kind := range []provider.Kind{provider.KindOpenAI, provider.KindGemini, provider.KindAnthropic} {
		key := s.APIKey(kind)
		if key == "" {
			router.Register(kind, missingKey(kind))
			continue
		}

		var g provider.Generator
		var err error
		switch kind {
		case provider.KindOpenAI:
			g, err = provider.NewOpenAI(key)
		case provider.KindAnthropic:
			g, err = provider.NewAnthropic(key)
		case provider.KindGemini:
			var gem *provider.Gemini
			gem, err = provider.NewGemini(ctx, key, s.GeminiSafety)
			if err == nil {
				closers = append(closers, func() { _ = gem.Close() })
			}
			g = gem
		}
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("%s client: %w", kind, err)
		}
		router.Register(kind, g)
	}
	return router, cleanup, nil
}

func missingKey(kind provider.Kind) provider.Generator {
	return provider.GeneratorFunc(func(context.Context, provider.Request) (provider.Response, error) {
		return provider.Response{}, fmt.Errorf("%w for %s (set it in the config file or %s)",
			provider.ErrNoAPIKey, kind, keyVar(kind))
	})
}

func keyVar(kind provider.Kind) string {
	switch kind {
	case provider.KindGemini:
		return "GEMINI_API_KEY"
	case provider.KindAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
