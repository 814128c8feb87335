package engine

import (
	"context"
	"strconv"
)

// StubModelClient returns canned responses (for development and testing).
type StubModelClient struct{}

func (m *StubModelClient) Complete(_ context.Context, prompt string) (string, error) {
	return "[stub] Generated content would appear here. Prompt length: " +
		strconv.Itoa(len(prompt)) + " bytes.", nil
}
