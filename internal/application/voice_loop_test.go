package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedListener struct {
	mu      sync.Mutex
	results []domain.ListenResult
}

func (l *scriptedListener) Listen(context.Context, time.Duration, time.Duration) domain.ListenResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.results) == 0 {
		return domain.ListenResult{Kind: domain.ListenUtterance, Text: "stop"}
	}
	result := l.results[0]
	l.results = l.results[1:]
	return result
}

func TestVoiceLoopConversation(t *testing.T) {
	listener := &scriptedListener{results: []domain.ListenResult{
		{Kind: domain.ListenTimeout},
		{Kind: domain.ListenUnrecognized},
		{Kind: domain.ListenUtterance, Text: "what matches a navy tie?"},
		{Kind: domain.ListenServiceError, Err: domain.ErrDeviceUnavailable},
		{Kind: domain.ListenUtterance, Text: "OK, Exit now"},
	}}
	speaker := &recordingSpeaker{}
	session := NewSession(&echoResponder{}, SessionOptions{})
	defer session.Close()

	var sleeps []time.Duration
	loop := NewVoiceLoop(listener, speaker, session, VoiceLoopOptions{
		Sleep: func(_ context.Context, d time.Duration) {
			sleeps = append(sleeps, d)
		},
	})

	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, []string{
		domain.VoiceWelcome,
		domain.RepromptSentence,
		domain.AckSentence,
		"reply to what matches a navy tie?",
		domain.RepromptSentence,
		domain.GoodbyeSentence,
	}, speaker.Texts())
	assert.Equal(t, []time.Duration{time.Second, 500 * time.Millisecond}, sleeps)
	assert.Len(t, session.History(), 2)
}

func TestVoiceLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	speaker := &recordingSpeaker{}
	session := NewSession(&echoResponder{}, SessionOptions{})
	defer session.Close()

	loop := NewVoiceLoop(&scriptedListener{}, speaker, session, VoiceLoopOptions{})
	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, []string{domain.VoiceWelcome}, speaker.Texts())
}

func TestIsStopCommand(t *testing.T) {
	t.Parallel()

	assert.True(t, IsStopCommand("please STOP"))
	assert.True(t, IsStopCommand("quit"))
	assert.False(t, IsStopCommand("what should I wear?"))
}
