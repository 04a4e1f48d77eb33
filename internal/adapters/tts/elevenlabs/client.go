package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

const (
	DefaultBaseURL      = "https://api.elevenlabs.io"
	DefaultVoiceID      = "cgSgspJ2msm6clMCkdW9"
	DefaultModelID      = "eleven_multilingual_v2"
	DefaultOutputFormat = "mp3_44100_128"

	requestTimeout = 30 * time.Second
	cacheTTL       = time.Hour
	maxErrorBody   = 4 << 10
	keySeparator   = "\x1f"
)

type Config struct {
	APIKey       string
	VoiceID      string
	ModelID      string
	OutputFormat string
	BaseURL      string
	HTTPClient   *http.Client
	Logger       *observability.Logger
}

type synthesisRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Client synthesizes speech with the ElevenLabs text-to-speech API. Audio is
// cached per voice, model and text.
type Client struct {
	cfg    Config
	http   *http.Client
	log    *observability.Logger
	store  *cache.Cache[[]byte]
	cache  *cache.LoadableCache[[]byte]
	memory *ristretto.Cache
}

var _ ports.Synthesizer = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("elevenlabs api key: %w", domain.ErrCredentialMissing)
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	log := cfg.Logger
	if log == nil {
		log = observability.NewNop()
	}

	memory, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech cache: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		http:   httpClient,
		log:    log.With("component", "elevenlabs", "voice", cfg.VoiceID),
		memory: memory,
	}
	c.store = cache.New[[]byte](ristretto_store.NewRistretto(memory))
	c.cache = cache.NewLoadable[[]byte](c.load, c.store)

	return c, nil
}

func (c *Client) Close() error {
	c.cache.Close()
	c.memory.Close()
	return nil
}

func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	return c.cache.Get(ctx, c.cacheKey(text))
}

func (c *Client) cacheKey(text string) string {
	return strings.Join([]string{c.cfg.VoiceID, c.cfg.ModelID, text}, keySeparator)
}

func (c *Client) load(ctx context.Context, key any) ([]byte, []store.Option, error) {
	k, ok := key.(string)
	if !ok {
		return nil, nil, fmt.Errorf("invalid speech cache key type %T", key)
	}
	parts := strings.SplitN(k, keySeparator, 3)
	if len(parts) != 3 {
		return nil, nil, fmt.Errorf("invalid speech cache key %q", k)
	}

	audio, err := c.fetch(ctx, parts[2])
	if err != nil {
		return nil, nil, err
	}

	c.log.Debug("speech synthesized", "chars", len(parts[2]), "bytes", len(audio))
	return audio, []store.Option{store.WithCost(int64(len(audio))), store.WithExpiration(cacheTTL)}, nil
}

func (c *Client) fetch(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{Text: text, ModelID: c.cfg.ModelID})
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read synthesis response: %w", domain.ErrBackendUnavailable, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio", domain.ErrBackendUnavailable)
	}

	return audio, nil
}

func (c *Client) endpoint() string {
	q := url.Values{}
	q.Set("output_format", c.cfg.OutputFormat)

	return strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/text-to-speech/" + url.PathEscape(c.cfg.VoiceID) + "?" + q.Encode()
}

func statusError(code int, detail string) error {
	var sentinel error
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = domain.ErrBackendAuth
	case http.StatusTooManyRequests:
		sentinel = domain.ErrBackendQuota
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		sentinel = domain.ErrBackendTimeout
	default:
		sentinel = domain.ErrBackendUnavailable
	}

	return fmt.Errorf("%w: elevenlabs status %d: %s", sentinel, code, detail)
}
