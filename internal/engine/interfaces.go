package engine

import (
	"context"
	"strings"

	"recast/internal/model"
)

// ModelClient abstracts the text-generation service. Implementations wrap
// Gemini, OpenAI-compatible services, or stubs.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generate sends the prompt through the client and enforces the single
// postcondition of the generation step: a non-empty result. Every failure,
// including an empty result, surfaces as a generation error.
func Generate(ctx context.Context, client ModelClient, prompt string) (string, error) {
	const op = "engine.Generate"

	text, err := client.Complete(ctx, prompt)
	if err != nil {
		return "", model.E(model.KindGenerationFailed, op, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", model.Errorf(model.KindGenerationFailed, op, "no text generated")
	}
	return text, nil
}
