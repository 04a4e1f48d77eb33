package ports

import (
	"context"
	"time"

	"github.com/bnema/mira/internal/domain"
)

type CaptureOptions struct {
	Timeout     time.Duration
	PhraseLimit time.Duration
}

// AudioCapture records one phrase. It returns domain.ErrNoSpeech when nobody
// starts speaking before Timeout.
type AudioCapture interface {
	Capture(ctx context.Context, opts CaptureOptions) (domain.AudioClip, error)
}

// Transcriber returns domain.ErrUnrecognized when the clip holds no words.
type Transcriber interface {
	Transcribe(ctx context.Context, clip domain.AudioClip) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type AudioPlayer interface {
	Play(ctx context.Context, audio []byte, waitForCompletion bool) error
}
