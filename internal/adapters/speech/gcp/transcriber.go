package gcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

const (
	DefaultLanguage = "en-US"

	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
	maxBackoff        = 5 * time.Second
	requestTimeout    = 30 * time.Second
)

type Config struct {
	LanguageCode string
	MaxRetries   int
	Logger       *observability.Logger
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// Transcriber sends captured phrases to Cloud Speech-to-Text v1 Recognize.
type Transcriber struct {
	recognize recognizeFunc
	close     func() error
	cfg       Config
	log       *observability.Logger
	backoff   time.Duration
}

var _ ports.Transcriber = (*Transcriber)(nil)

func NewTranscriber(ctx context.Context, cfg Config) (*Transcriber, error) {
	client, err := speech.NewClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("%w: speech client: %w", domain.ErrBackendUnavailable, err)
	}

	t := newTranscriber(func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	}, cfg)
	t.close = client.Close

	return t, nil
}

func newTranscriber(fn recognizeFunc, cfg Config) *Transcriber {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = DefaultLanguage
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	log := cfg.Logger
	if log == nil {
		log = observability.NewNop()
	}

	return &Transcriber{
		recognize: fn,
		close:     func() error { return nil },
		cfg:       cfg,
		log:       log.With("component", "gcp.speech"),
		backoff:   defaultBackoff,
	}
}

func (t *Transcriber) Close() error {
	return t.close()
}

func (t *Transcriber) Transcribe(ctx context.Context, clip domain.AudioClip) (string, error) {
	if len(clip.PCM) == 0 {
		return "", domain.ErrUnrecognized
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: RecognitionConfig(clip, t.cfg.LanguageCode),
		Audio:  &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Content{Content: clip.PCM}},
	}

	resp, err := t.retry(ctx, func() (*speechpb.RecognizeResponse, error) {
		return t.recognize(ctx, req)
	})
	if err != nil {
		return "", ClassifyError(err)
	}

	transcript := Transcript(resp)
	if transcript == "" {
		return "", domain.ErrUnrecognized
	}

	t.log.Debug("transcribed phrase", "duration", clip.Duration(), "chars", len(transcript))
	return transcript, nil
}

func (t *Transcriber) retry(ctx context.Context, fn func() (*speechpb.RecognizeResponse, error)) (*speechpb.RecognizeResponse, error) {
	backoff := t.backoff
	var last error
	for attempt := 0; attempt <= t.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		last = err

		if !Retryable(err) || attempt == t.cfg.MaxRetries {
			break
		}

		t.log.Warn("speech recognize failed, retrying", "attempt", attempt+1, "backoff", backoff, "error", err)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return nil, last
}

func RecognitionConfig(clip domain.AudioClip, language string) *speechpb.RecognitionConfig {
	if language == "" {
		language = DefaultLanguage
	}

	return &speechpb.RecognitionConfig{
		Encoding:                   speechpb.RecognitionConfig_LINEAR16,
		SampleRateHertz:            int32(clip.SampleRate),
		AudioChannelCount:          1,
		LanguageCode:               language,
		EnableAutomaticPunctuation: true,
	}
}

// Transcript joins the top alternative of every result.
func Transcript(resp *speechpb.RecognizeResponse) string {
	if resp == nil {
		return ""
	}

	parts := make([]string, 0, len(resp.GetResults()))
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := strings.TrimSpace(alts[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}

func Retryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

// ClassifyError wraps a Speech API error with the matching domain sentinel.
func ClassifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %w", domain.ErrBackendAuth, err)
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %w", domain.ErrBackendQuota, err)
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
}

// ClientOptionsFromEnv reads GOOGLE_APPLICATION_CREDENTIALS_JSON (inline JSON)
// or GOOGLE_APPLICATION_CREDENTIALS (a path). Without either the client falls
// back to application default credentials.
func ClientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}

	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
