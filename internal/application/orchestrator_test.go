package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResponder struct {
	mu    sync.Mutex
	delay time.Duration
	calls int
}

func (r *echoResponder) Respond(_ context.Context, utterance string) string {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return "reply to " + utterance
}

type panicResponder struct{}

func (panicResponder) Respond(context.Context, string) string {
	panic("nil map write")
}

func TestSessionConcurrentSubmissionsCommitPairs(t *testing.T) {
	responder := &echoResponder{delay: time.Millisecond}
	session := NewSession(responder, SessionOptions{})
	defer session.Close()

	const commands = 25
	ids := make(map[string]struct{}, commands)
	for i := 0; i < commands; i++ {
		ids[session.Submit(context.Background(), fmt.Sprintf("question %d", i))] = struct{}{}
	}
	session.Wait()

	assert.Len(t, ids, commands)
	assert.False(t, session.Busy())

	history := session.History()
	require.Len(t, history, 2*commands)
	for i := 0; i < len(history); i += 2 {
		user := history[i]
		assistant := history[i+1]
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, domain.RoleAssistant, assistant.Role)
		assert.Equal(t, "reply to "+user.Content, assistant.Content)
	}
}

func TestSessionSubmitSurvivesCallerCancellation(t *testing.T) {
	responder := &echoResponder{delay: 20 * time.Millisecond}
	session := NewSession(responder, SessionOptions{})
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	session.Submit(ctx, "hello")
	cancel()
	session.Wait()

	assert.Len(t, session.History(), 2)
}

func TestSessionHandleRecoversPanic(t *testing.T) {
	reporter := &recordingReporter{}
	session := NewSession(panicResponder{}, SessionOptions{Reporter: reporter})
	defer session.Close()

	reply := session.Handle(context.Background(), "boom")
	assert.Equal(t, domain.InternalErrorReply, reply)

	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, domain.InternalErrorReply, history[1].Content)

	errs := reporter.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "nil map write")
}

func TestSessionConsumeRerender(t *testing.T) {
	session := NewSession(&echoResponder{}, SessionOptions{})
	defer session.Close()

	assert.False(t, session.ConsumeRerender())

	session.Handle(context.Background(), "hi")
	assert.True(t, session.ConsumeRerender())
	assert.False(t, session.ConsumeRerender())
}

func TestSessionGreetOnce(t *testing.T) {
	speaker := &recordingSpeaker{}
	session := NewSession(&echoResponder{}, SessionOptions{Speaker: speaker})

	session.Greet()
	session.Greet()
	session.Handle(context.Background(), "hi")
	session.Close()

	transcript := session.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, domain.ChatWelcome, transcript[0].Content)
	assert.Len(t, session.History(), 2)
	assert.Equal(t, []string{domain.ChatWelcome}, speaker.Texts())
}

func TestSessionOnItemSavedRecordsNoticeAndSpeaks(t *testing.T) {
	speaker := &recordingSpeaker{}
	session := NewSession(&echoResponder{}, SessionOptions{Speaker: speaker})

	err := session.OnItemSaved(context.Background(), domain.Item{Label: "handbag"})
	require.NoError(t, err)
	session.Close()

	assert.Equal(t, "I've saved the handbag to your virtual wardrobe!", session.Notice())
	assert.True(t, session.ConsumeRerender())
	assert.Equal(t, []string{"I've saved the handbag to your virtual wardrobe!"}, speaker.Texts())

	require.NoError(t, session.OnItemSaved(context.Background(), domain.Item{Label: "tie"}))
}

func TestSessionSubmitSpeaksAckThenReply(t *testing.T) {
	speaker := &recordingSpeaker{}
	session := NewSession(&echoResponder{}, SessionOptions{Speaker: speaker})

	session.Submit(context.Background(), "hello")
	session.Close()

	assert.Equal(t, []string{domain.AckSentence, "reply to hello"}, speaker.Texts())
	for _, wait := range speaker.waits {
		assert.True(t, wait)
	}
}

func TestSessionRecent(t *testing.T) {
	session := NewSession(&echoResponder{}, SessionOptions{})
	defer session.Close()

	for i := 0; i < 4; i++ {
		session.Handle(context.Background(), fmt.Sprintf("q%d", i))
	}

	recent := session.Recent(5)
	require.Len(t, recent, 5)
	assert.Equal(t, "reply to q1", recent[0].Content)
	assert.Equal(t, "reply to q3", recent[4].Content)
	assert.Empty(t, session.Recent(0))
}

func TestSessionNotifySetsNoticeWithoutHistory(t *testing.T) {
	session := NewSession(&echoResponder{}, SessionOptions{})
	defer session.Close()

	session.Notify("Camera unavailable, continuing without it.")

	assert.Equal(t, "Camera unavailable, continuing without it.", session.Notice())
	assert.True(t, session.ConsumeRerender())
	assert.Empty(t, session.History())
}
