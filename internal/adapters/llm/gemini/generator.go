package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

const DefaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	BaseURL         string
	Logger          *observability.Logger
}

// contentGenerator is the subset of *genai.Models the adapter calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Generator struct {
	models contentGenerator
	cfg    Config
	log    *observability.Logger
}

var _ ports.Generator = (*Generator)(nil)

func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key: %w", domain.ErrCredentialMissing)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return newGenerator(client.Models, cfg), nil
}

func newGenerator(models contentGenerator, cfg Config) *Generator {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	log := cfg.Logger
	if log == nil {
		log = observability.NewNop()
	}

	return &Generator{models: models, cfg: cfg, log: log.With("component", "gemini", "model", cfg.Model)}
}

func (g *Generator) NewSession(_ context.Context, systemInstruction string) (ports.GenerationSession, error) {
	temperature := g.cfg.Temperature
	topP := g.cfg.TopP

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       &temperature,
		TopP:              &topP,
		MaxOutputTokens:   g.cfg.MaxOutputTokens,
	}

	return &Session{models: g.models, model: g.cfg.Model, config: config, log: g.log}, nil
}

// Session is one multi-turn chat. Only turns that produced a reply are kept,
// so a failed Send can be retried without leaving a dangling user turn.
type Session struct {
	models contentGenerator
	model  string
	config *genai.GenerateContentConfig
	log    *observability.Logger

	mu      sync.Mutex
	history []*genai.Content
}

var _ ports.GenerationSession = (*Session)(nil)

func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userTurn := genai.NewContentFromText(text, genai.RoleUser)
	contents := make([]*genai.Content, 0, len(s.history)+1)
	contents = append(contents, s.history...)
	contents = append(contents, userTurn)

	res, err := s.models.GenerateContent(ctx, s.model, contents, s.config)
	if err != nil {
		return "", ClassifyError(err)
	}

	if usage := res.UsageMetadata; usage != nil {
		s.log.Debug("gemini usage",
			"prompt_tokens", usage.PromptTokenCount,
			"candidate_tokens", usage.CandidatesTokenCount,
			"total_tokens", usage.TotalTokenCount,
		)
	}

	if feedback := res.PromptFeedback; feedback != nil && feedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s %s", domain.ErrReplyBlocked, feedback.BlockReason, feedback.BlockReasonMessage)
	}

	reply := strings.TrimSpace(res.Text())
	if reply == "" {
		return "", domain.ErrEmptyReply
	}

	s.history = append(s.history, userTurn, genai.NewContentFromText(reply, genai.RoleModel))
	return reply, nil
}

// Turns returns the number of contents kept in the history.
func (s *Session) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.history)
}

// ClassifyError wraps a Gemini client error with the matching domain
// sentinel.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	code, ok := apiErrorCode(err)
	if !ok {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrBackendAuth, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrBackendQuota, err)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", domain.ErrBackendTimeout, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}

	return 0, false
}
