package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
	"github.com/google/uuid"
)

const defaultSpeechQueueSize = 16

type Responder interface {
	Respond(ctx context.Context, utterance string) string
}

type Speaker interface {
	Speak(ctx context.Context, text string, waitForCompletion bool)
}

type SessionOptions struct {
	// Speaker is optional; without it queued speech is dropped silently.
	Speaker   Speaker
	Reporter  ports.ErrorReporter
	Clock     ports.Clock
	Logger    *observability.Logger
	QueueSize int
}

// Session is the conversation state shared by the input surface and the frame
// path. mu guards history, rerender, notice and greeting only.
type Session struct {
	responder Responder
	speaker   Speaker
	reporter  ports.ErrorReporter
	clock     ports.Clock
	log       *observability.Logger
	newID     func() string

	mu       sync.Mutex
	history  []domain.Turn
	rerender bool
	notice   string
	greeting *domain.Turn

	inFlight atomic.Int32
	commands sync.WaitGroup

	speechMu     sync.RWMutex
	speechClosed bool
	speech       chan string
	speechDone   chan struct{}
	closeOnce    sync.Once
}

var _ ports.ItemSavedListener = (*Session)(nil)

func NewSession(responder Responder, opts SessionOptions) *Session {
	if opts.Reporter == nil {
		opts.Reporter = ports.NopReporter{}
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = observability.NewNop()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultSpeechQueueSize
	}

	s := &Session{
		responder:  responder,
		speaker:    opts.Speaker,
		reporter:   opts.Reporter,
		clock:      opts.Clock,
		log:        opts.Logger.With("component", "session"),
		newID:      uuid.NewString,
		speech:     make(chan string, opts.QueueSize),
		speechDone: make(chan struct{}),
	}

	go s.runSpeechQueue()

	return s
}

// Greet records the welcome message the first time it is called.
func (s *Session) Greet() {
	s.mu.Lock()
	if s.greeting != nil {
		s.mu.Unlock()
		return
	}
	s.greeting = &domain.Turn{Role: domain.RoleAssistant, Content: domain.ChatWelcome, At: s.clock.Now()}
	s.rerender = true
	s.mu.Unlock()

	s.say(domain.ChatWelcome)
}

// Submit handles utterance on its own goroutine. The command outlives ctx
// cancellation so a reply is always committed.
func (s *Session) Submit(ctx context.Context, utterance string) string {
	commandID := s.newID()
	commandCtx := observability.WithCommandID(context.WithoutCancel(ctx), commandID)

	s.inFlight.Add(1)
	s.commands.Add(1)
	s.markRerender()

	go func() {
		defer s.commands.Done()
		defer s.inFlight.Add(-1)

		s.log.Debug("command dispatched", "command_id", commandID, "phase", string(domain.PhaseDispatched))
		s.say(domain.AckSentence)

		reply := s.Handle(commandCtx, utterance)
		s.say(reply)
	}()

	return commandID
}

// Handle composes a reply and commits the user and assistant turns together.
func (s *Session) Handle(ctx context.Context, utterance string) string {
	reply := s.compose(ctx, utterance)
	s.log.Debug("reply composed", "phase", string(domain.PhaseComposed))

	s.commit(utterance, reply)
	s.log.Debug("turns committed", "phase", string(domain.PhaseCommitted))

	return reply
}

func (s *Session) compose(ctx context.Context, utterance string) (reply string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := fmt.Errorf("compose reply panicked: %v", recovered)
			s.log.Error("compose reply", "error", err)
			s.reporter.Capture(ctx, err)
			reply = domain.FallbackText(domain.FailureInternal)
		}
	}()

	return s.responder.Respond(ctx, utterance)
}

func (s *Session) commit(utterance, reply string) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history,
		domain.Turn{Role: domain.RoleUser, Content: utterance, At: now},
		domain.Turn{Role: domain.RoleAssistant, Content: reply, At: now},
	)
	s.rerender = true
}

// OnItemSaved announces a newly persisted item.
func (s *Session) OnItemSaved(_ context.Context, item domain.Item) error {
	sentence := domain.ItemSavedSentence(item)

	s.mu.Lock()
	s.notice = sentence
	s.rerender = true
	s.mu.Unlock()

	s.say(sentence)

	return nil
}

// Notify shows text as the current notice without speaking it.
func (s *Session) Notify(text string) {
	s.mu.Lock()
	s.notice = text
	s.rerender = true
	s.mu.Unlock()
}

// ConsumeRerender reports whether anything changed since the last call and
// clears the flag.
func (s *Session) ConsumeRerender() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.rerender
	s.rerender = false
	return changed
}

func (s *Session) markRerender() {
	s.mu.Lock()
	s.rerender = true
	s.mu.Unlock()
}

func (s *Session) History() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.Turn(nil), s.history...)
}

// Transcript is the greeting, when one was given, followed by the history.
func (s *Session) Transcript() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]domain.Turn, 0, len(s.history)+1)
	if s.greeting != nil {
		turns = append(turns, *s.greeting)
	}
	return append(turns, s.history...)
}

// Recent returns at most the last n transcript turns.
func (s *Session) Recent(n int) []domain.Turn {
	turns := s.Transcript()
	if n <= 0 {
		return []domain.Turn{}
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns
}

func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.notice
}

func (s *Session) Busy() bool {
	return s.inFlight.Load() > 0
}

// Wait blocks until every submitted command has committed.
func (s *Session) Wait() {
	s.commands.Wait()
}

// Close waits for in-flight commands, then drains and stops the speech queue.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.commands.Wait()

		s.speechMu.Lock()
		s.speechClosed = true
		close(s.speech)
		s.speechMu.Unlock()

		<-s.speechDone
	})
}

func (s *Session) say(text string) {
	if s.speaker == nil || text == "" {
		return
	}

	s.speechMu.RLock()
	defer s.speechMu.RUnlock()
	if s.speechClosed {
		return
	}

	select {
	case s.speech <- text:
	default:
		s.log.Warn("speech queue full, dropping text", "text", text)
	}
}

func (s *Session) runSpeechQueue() {
	defer close(s.speechDone)

	for text := range s.speech {
		s.speaker.Speak(context.Background(), text, true)
	}
}
