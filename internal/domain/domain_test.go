package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelTableLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		detection Detection
		want      string
	}{
		{name: "known id", detection: Detection{ClassID: 27, BackendLabel: "tie"}, want: "tie"},
		{name: "table wins over backend", detection: Detection{ClassID: 26, BackendLabel: "purse"}, want: "handbag"},
		{name: "falls back to backend label", detection: Detection{ClassID: 67, BackendLabel: "cell phone"}, want: "cell phone"},
		{name: "no label at all", detection: Detection{ClassID: 999}, want: "unknown item"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, DefaultLabelTable.Label(tc.detection))
		})
	}
}

func TestIsPerson(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPerson("person"))
	assert.True(t, IsPerson(" Person "))
	assert.False(t, IsPerson("personal bag"))
}

func TestLiveStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NothingInFocus, LiveStatusFor(nil))
	assert.Equal(t, "tie (red), handbag (black)", LiveStatusFor([]Item{
		{Label: "tie", Color: "red"},
		{Label: "handbag", Color: "black"},
	}))
}

func TestItemSavedSentence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "I've saved the tie to your virtual wardrobe!", ItemSavedSentence(Item{Label: "tie"}))
}

func TestClassifyFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{name: "nil", err: nil, want: FailureNone},
		{name: "timeout", err: fmt.Errorf("send: %w", ErrBackendTimeout), want: FailureTimeout},
		{name: "context deadline", err: fmt.Errorf("send: %w", context.DeadlineExceeded), want: FailureTimeout},
		{name: "auth", err: fmt.Errorf("send: %w", ErrBackendAuth), want: FailureAuth},
		{name: "missing credential", err: ErrCredentialMissing, want: FailureAuth},
		{name: "quota", err: fmt.Errorf("send: %w", ErrBackendQuota), want: FailureQuota},
		{name: "blocked", err: ErrReplyBlocked, want: FailureBlocked},
		{name: "empty", err: ErrEmptyReply, want: FailureEmptyReply},
		{name: "anything else", err: errors.New("connection reset"), want: FailureUnavailable},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ClassifyFailure(tc.err))
		})
	}
}

func TestFallbackText(t *testing.T) {
	t.Parallel()

	for _, kind := range []FailureKind{FailureTimeout, FailureAuth, FailureQuota, FailureBlocked, FailureEmptyReply, FailureUnavailable} {
		assert.Equal(t, ApologyReply, FallbackText(kind), "kind %s", kind)
	}
	assert.Equal(t, InternalErrorReply, FallbackText(FailureInternal))
	assert.Empty(t, FallbackText(FailureNone))
}

func TestAudioClipDuration(t *testing.T) {
	t.Parallel()

	clip := AudioClip{PCM: make([]byte, 32000), SampleRate: 16000}
	assert.Equal(t, time.Second, clip.Duration())
	assert.Zero(t, AudioClip{PCM: make([]byte, 10)}.Duration())
}

func TestCredentialByName(t *testing.T) {
	t.Parallel()

	credential, err := CredentialByName(" Gemini ")
	require.NoError(t, err)
	assert.Equal(t, "GEMINI_API_KEY", credential.EnvVar)
	assert.True(t, credential.Required)

	credential, err = CredentialByName("elevenlabs")
	require.NoError(t, err)
	assert.False(t, credential.Required)

	_, err = CredentialByName("openai")
	require.Error(t, err)
}
