package gcp

import (
	"context"
	"errors"
	"testing"
	"time"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bnema/mira/internal/domain"
)

func response(transcripts ...string) *speechpb.RecognizeResponse {
	resp := &speechpb.RecognizeResponse{}
	for _, text := range transcripts {
		resp.Results = append(resp.Results, &speechpb.SpeechRecognitionResult{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: text}},
		})
	}
	return resp
}

func testClip() domain.AudioClip {
	return domain.AudioClip{PCM: make([]byte, 3200), SampleRate: 16000}
}

func newTestTranscriber(fn recognizeFunc) *Transcriber {
	t := newTranscriber(fn, Config{MaxRetries: 2})
	t.backoff = time.Millisecond
	return t
}

func TestTranscribeBuildsLinear16Request(t *testing.T) {
	var got *speechpb.RecognizeRequest
	tr := newTestTranscriber(func(_ context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		got = req
		return response("what should I wear", "today"), nil
	})

	text, err := tr.Transcribe(context.Background(), testClip())

	require.NoError(t, err)
	assert.Equal(t, "what should I wear today", text)
	require.NotNil(t, got)
	assert.Equal(t, speechpb.RecognitionConfig_LINEAR16, got.GetConfig().GetEncoding())
	assert.Equal(t, int32(16000), got.GetConfig().GetSampleRateHertz())
	assert.Equal(t, "en-US", got.GetConfig().GetLanguageCode())
	assert.Len(t, got.GetAudio().GetContent(), 3200)
}

func TestTranscribeEmptyTranscriptIsUnrecognized(t *testing.T) {
	tr := newTestTranscriber(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return response("  "), nil
	})

	_, err := tr.Transcribe(context.Background(), testClip())
	assert.ErrorIs(t, err, domain.ErrUnrecognized)

	_, err = tr.Transcribe(context.Background(), domain.AudioClip{SampleRate: 16000})
	assert.ErrorIs(t, err, domain.ErrUnrecognized)
}

func TestTranscribeRetriesTransientErrors(t *testing.T) {
	calls := 0
	tr := newTestTranscriber(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		calls++
		if calls < 3 {
			return nil, status.Error(codes.Unavailable, "try again")
		}
		return response("hello"), nil
	})

	text, err := tr.Transcribe(context.Background(), testClip())

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 3, calls)
}

func TestTranscribeGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	tr := newTestTranscriber(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		calls++
		return nil, status.Error(codes.ResourceExhausted, "quota")
	})

	_, err := tr.Transcribe(context.Background(), testClip())

	assert.ErrorIs(t, err, domain.ErrBackendQuota)
	assert.Equal(t, 3, calls)
}

func TestTranscribeDoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	tr := newTestTranscriber(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		calls++
		return nil, status.Error(codes.PermissionDenied, "no")
	})

	_, err := tr.Transcribe(context.Background(), testClip())

	assert.ErrorIs(t, err, domain.ErrBackendAuth)
	assert.Equal(t, 1, calls)
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(status.Error(codes.Unavailable, "")))
	assert.True(t, Retryable(status.Error(codes.DeadlineExceeded, "")))
	assert.False(t, Retryable(status.Error(codes.InvalidArgument, "")))
	assert.False(t, Retryable(errors.New("plain")))
}

func TestClientOptionsFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	assert.Empty(t, ClientOptionsFromEnv())

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/gcp.json")
	assert.Len(t, ClientOptionsFromEnv(), 1)

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", `{"type":"service_account"}`)
	assert.Len(t, ClientOptionsFromEnv(), 1)
}
