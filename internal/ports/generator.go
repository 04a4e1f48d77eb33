package ports

import "context"

type Generator interface {
	NewSession(ctx context.Context, systemInstruction string) (GenerationSession, error)
}

// GenerationSession keeps prior turns so every Send is answered in context.
type GenerationSession interface {
	Send(ctx context.Context, text string) (string, error)
}
