package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
	"github.com/bnema/mira/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestVoiceIOListen(t *testing.T) {
	clip := domain.AudioClip{PCM: make([]byte, 3200), SampleRate: 16000}
	serviceErr := errors.New("recognizer offline")

	tests := []struct {
		name       string
		captureErr error
		transcript string
		transErr   error
		skipTrans  bool
		want       domain.ListenKind
		wantText   string
	}{
		{name: "utterance", transcript: " what should I wear? ", want: domain.ListenUtterance, wantText: "what should I wear?"},
		{name: "timeout", captureErr: domain.ErrNoSpeech, skipTrans: true, want: domain.ListenTimeout},
		{name: "device failure", captureErr: domain.ErrDeviceUnavailable, skipTrans: true, want: domain.ListenServiceError},
		{name: "unrecognized", transErr: domain.ErrUnrecognized, want: domain.ListenUnrecognized},
		{name: "empty transcript", transcript: "   ", want: domain.ListenUnrecognized},
		{name: "service error", transErr: serviceErr, want: domain.ListenServiceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := mocks.NewMockAudioCapture(t)
			transcriber := mocks.NewMockTranscriber(t)
			voice := NewVoiceIO(VoiceIOOptions{Capture: capture, Transcriber: transcriber})

			capture.EXPECT().Capture(mockAnyContext(), ports.CaptureOptions{Timeout: 5 * time.Second, PhraseLimit: 10 * time.Second}).Return(clip, tt.captureErr)
			if !tt.skipTrans {
				transcriber.EXPECT().Transcribe(mockAnyContext(), clip).Return(tt.transcript, tt.transErr)
			}

			result := voice.Listen(context.Background(), 0, 0)
			assert.Equal(t, tt.want, result.Kind)
			assert.Equal(t, tt.wantText, result.Text)
			if tt.want == domain.ListenServiceError {
				assert.Error(t, result.Err)
			}
		})
	}
}

func TestVoiceIOListenWithoutDevices(t *testing.T) {
	voice := NewVoiceIO(VoiceIOOptions{})

	result := voice.Listen(context.Background(), time.Second, time.Second)
	assert.Equal(t, domain.ListenServiceError, result.Kind)
	assert.ErrorIs(t, result.Err, domain.ErrDeviceUnavailable)
}

func TestVoiceIOSpeakWithoutSynthesizerIsTextOnly(t *testing.T) {
	player := mocks.NewMockAudioPlayer(t)
	voice := NewVoiceIO(VoiceIOOptions{Player: player})

	assert.False(t, voice.CanSpeak())
	voice.Speak(context.Background(), "hello", true)
}

func TestVoiceIOSpeakPlaysSynthesizedAudio(t *testing.T) {
	synth := mocks.NewMockSynthesizer(t)
	player := mocks.NewMockAudioPlayer(t)
	voice := NewVoiceIO(VoiceIOOptions{Synthesizer: synth, Player: player})

	synth.EXPECT().Synthesize(mockAnyContext(), "hello").Return([]byte("mp3"), nil)
	player.EXPECT().Play(mockAnyContext(), []byte("mp3"), true).Return(nil)

	voice.Speak(context.Background(), "hello", true)
}

func TestVoiceIOSpeakSwallowsErrors(t *testing.T) {
	synth := mocks.NewMockSynthesizer(t)
	player := mocks.NewMockAudioPlayer(t)
	voice := NewVoiceIO(VoiceIOOptions{Synthesizer: synth, Player: player})

	synth.EXPECT().Synthesize(mockAnyContext(), "first").Return(nil, domain.ErrBackendQuota)
	synth.EXPECT().Synthesize(mockAnyContext(), "second").Return([]byte("mp3"), nil)
	player.EXPECT().Play(mockAnyContext(), mock.Anything, false).Return(errors.New("no audio sink"))

	voice.Speak(context.Background(), "first", true)
	voice.Speak(context.Background(), "second", false)
	voice.Speak(context.Background(), "   ", false)
}
