package port

import "context"

// AIProvider abstracts the two opaque capabilities the pipeline needs:
// text generation from a prompt, and vectorization of text.
// Implementations can target OpenAI, Ollama, or any compatible API.
type AIProvider interface {
	// ModelName returns the identifier of the generation model being used.
	ModelName() string

	// Chat sends a system instruction plus task content and returns the
	// raw model response text.
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Embed generates a fixed-length vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}
