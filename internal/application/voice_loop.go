package application

import (
	"context"
	"strings"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
)

const (
	timeoutBackoff = time.Second
	turnPause      = 500 * time.Millisecond
)

var stopWords = []string{"quit", "exit", "stop"}

type Listener interface {
	Listen(ctx context.Context, timeout, phraseLimit time.Duration) domain.ListenResult
}

type VoiceLoopOptions struct {
	ListenTimeout time.Duration
	PhraseLimit   time.Duration
	Logger        *observability.Logger
	// Sleep is replaced in tests.
	Sleep func(ctx context.Context, d time.Duration)
}

// VoiceLoop is the hands-free conversation: listen, answer aloud, repeat.
type VoiceLoop struct {
	ears    Listener
	mouth   Speaker
	session *Session
	opts    VoiceLoopOptions
	log     *observability.Logger
}

func NewVoiceLoop(ears Listener, mouth Speaker, session *Session, opts VoiceLoopOptions) *VoiceLoop {
	if opts.ListenTimeout <= 0 {
		opts.ListenTimeout = domain.DefaultListenTimeout
	}
	if opts.PhraseLimit <= 0 {
		opts.PhraseLimit = domain.DefaultPhraseLimit
	}
	if opts.Logger == nil {
		opts.Logger = observability.NewNop()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}

	return &VoiceLoop{
		ears:    ears,
		mouth:   mouth,
		session: session,
		opts:    opts,
		log:     opts.Logger.With("component", "voice_loop"),
	}
}

// Run returns when the user says a stop word or ctx is cancelled.
func (l *VoiceLoop) Run(ctx context.Context) error {
	l.mouth.Speak(ctx, domain.VoiceWelcome, true)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		result := l.ears.Listen(ctx, l.opts.ListenTimeout, l.opts.PhraseLimit)
		if ctx.Err() != nil {
			return nil
		}

		switch result.Kind {
		case domain.ListenTimeout:
			l.opts.Sleep(ctx, timeoutBackoff)
			continue
		case domain.ListenUnrecognized, domain.ListenServiceError:
			if result.Err != nil {
				l.log.Warn("listen failed", "error", result.Err)
			}
			l.mouth.Speak(ctx, domain.RepromptSentence, true)
			continue
		}

		if IsStopCommand(result.Text) {
			l.mouth.Speak(ctx, domain.GoodbyeSentence, true)
			return nil
		}

		l.mouth.Speak(ctx, domain.AckSentence, false)
		reply := l.session.Handle(ctx, result.Text)
		l.mouth.Speak(ctx, reply, true)

		l.opts.Sleep(ctx, turnPause)
	}
}

// IsStopCommand reports whether the utterance asks to end the conversation.
func IsStopCommand(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range stopWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
