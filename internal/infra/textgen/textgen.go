package textgen

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var (
	// ErrProviderUnavailable means no configured provider was left to try.
	// Returned without any network call when credentials are missing.
	ErrProviderUnavailable = errors.New("no text-generation provider available")

	// ErrEmptyResponse means the provider answered 200 with no usable text.
	ErrEmptyResponse = errors.New("provider returned an empty response")
)

// ProviderError wraps an upstream failure so callers can tell infrastructure
// trouble apart from missing configuration.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

type Options struct {
	MaxOutputTokens int
	Temperature     float64
	PreferSecondary bool
}

// Provider is one hosted LLM. Available reports whether a credential is
// configured; Generate is never called on an unavailable provider.
type Provider interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, system, prompt string, opts Options) (string, error)
}

// Chain is the ordered-fallback selection policy: optionally the secondary
// first, then the primary. One pass, no retries, no backoff.
type Chain struct {
	Primary   Provider
	Secondary Provider
}

func NewChain(primary, secondary Provider) *Chain {
	return &Chain{Primary: primary, Secondary: secondary}
}

func (c *Chain) Generate(ctx context.Context, system, prompt string, opts Options) (string, error) {
	order := []Provider{c.Primary, c.Secondary}
	if opts.PreferSecondary && c.Secondary != nil && c.Secondary.Available() {
		order = []Provider{c.Secondary, c.Primary}
	}

	var lastErr error
	for _, p := range order {
		if p == nil || !p.Available() {
			continue
		}
		text, err := p.Generate(ctx, system, prompt, opts)
		if err != nil {
			log.Printf("[TEXTGEN] %s failed, falling through: %v", p.Name(), err)
			lastErr = err
			continue
		}
		if text == "" {
			lastErr = ErrEmptyResponse
			continue
		}
		return text, nil
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrProviderUnavailable
}
