package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

type VoiceIOOptions struct {
	Capture     ports.AudioCapture
	Transcriber ports.Transcriber
	// Synthesizer and Player are optional. Without both, Speak only logs.
	Synthesizer ports.Synthesizer
	Player      ports.AudioPlayer
	Logger      *observability.Logger
}

type VoiceIO struct {
	capture     ports.AudioCapture
	transcriber ports.Transcriber
	synthesizer ports.Synthesizer
	player      ports.AudioPlayer
	log         *observability.Logger
}

func NewVoiceIO(opts VoiceIOOptions) *VoiceIO {
	if opts.Logger == nil {
		opts.Logger = observability.NewNop()
	}

	return &VoiceIO{
		capture:     opts.Capture,
		transcriber: opts.Transcriber,
		synthesizer: opts.Synthesizer,
		player:      opts.Player,
		log:         opts.Logger.With("component", "voice"),
	}
}

func (v *VoiceIO) CanSpeak() bool {
	return v.synthesizer != nil && v.player != nil
}

// Listen records one phrase and transcribes it. Failures are folded into the
// result kind rather than returned.
func (v *VoiceIO) Listen(ctx context.Context, timeout, phraseLimit time.Duration) domain.ListenResult {
	if timeout <= 0 {
		timeout = domain.DefaultListenTimeout
	}
	if phraseLimit <= 0 {
		phraseLimit = domain.DefaultPhraseLimit
	}

	if v.capture == nil || v.transcriber == nil {
		return domain.ListenResult{Kind: domain.ListenServiceError, Err: domain.ErrDeviceUnavailable}
	}

	clip, err := v.capture.Capture(ctx, ports.CaptureOptions{Timeout: timeout, PhraseLimit: phraseLimit})
	if err != nil {
		if errors.Is(err, domain.ErrNoSpeech) {
			return domain.ListenResult{Kind: domain.ListenTimeout}
		}
		v.log.Warn("capture audio", "error", err)
		return domain.ListenResult{Kind: domain.ListenServiceError, Err: err}
	}

	v.log.Debug("phrase captured", "duration", clip.Duration())

	text, err := v.transcriber.Transcribe(ctx, clip)
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognized) {
			return domain.ListenResult{Kind: domain.ListenUnrecognized}
		}
		v.log.Warn("transcribe audio", "error", err)
		return domain.ListenResult{Kind: domain.ListenServiceError, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ListenResult{Kind: domain.ListenUnrecognized}
	}

	v.log.Info("user said", "text", text)

	return domain.ListenResult{Kind: domain.ListenUtterance, Text: text}
}

// Speak synthesizes and plays text. Errors are logged and swallowed.
func (v *VoiceIO) Speak(ctx context.Context, text string, waitForCompletion bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if !v.CanSpeak() {
		v.log.Info("speech disabled", "text", text)
		return
	}

	audio, err := v.synthesizer.Synthesize(ctx, text)
	if err != nil {
		v.log.Warn("synthesize speech", "error", err)
		return
	}

	if err := v.player.Play(ctx, audio, waitForCompletion); err != nil {
		v.log.Warn("play speech", "error", err)
	}
}
