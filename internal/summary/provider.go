// Package summary generates AI compliance digests for properties, pulling
// together violations, permits, and tax balances into a short narrative.
package summary

import "context"

// Provider is an LLM backend capable of turning a compliance digest into
// prose.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a summary from the digest.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summarization.
type SummarizeRequest struct {
	// Digest is the compliance snapshot to narrate.
	Digest Digest

	// Prompt is an optional custom prompt (if empty, built from the digest).
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the provider's output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}
