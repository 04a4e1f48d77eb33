package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/bnema/mira/internal/domain"
)

type fakeModels struct {
	calls     [][]*genai.Content
	configs   []*genai.GenerateContentConfig
	responses []*genai.GenerateContentResponse
	errs      []error
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	i := len(f.calls)
	f.calls = append(f.calls, contents)
	f.configs = append(f.configs, config)

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	return f.responses[i], nil
}

func reply(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 5,
			TotalTokenCount:      15,
		},
	}
}

func newTestSession(t *testing.T, models *fakeModels) *Session {
	t.Helper()

	gen := newGenerator(models, Config{Temperature: 0.7, TopP: 0.95, MaxOutputTokens: 1024})
	session, err := gen.NewSession(context.Background(), "be a stylist")
	require.NoError(t, err)

	return session.(*Session)
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), Config{})

	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
}

func TestSessionSendsSystemInstructionAndSettings(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{reply("Try the navy tie.")}}
	session := newTestSession(t, models)

	got, err := session.Send(context.Background(), "what should I wear?")

	require.NoError(t, err)
	assert.Equal(t, "Try the navy tie.", got)
	require.Len(t, models.configs, 1)
	cfg := models.configs[0]
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be a stylist", cfg.SystemInstruction.Parts[0].Text)
	assert.InDelta(t, 0.7, *cfg.Temperature, 0.0001)
	assert.InDelta(t, 0.95, *cfg.TopP, 0.0001)
	assert.Equal(t, int32(1024), cfg.MaxOutputTokens)
	assert.Equal(t, DefaultModel, session.model)
}

func TestSessionKeepsHistoryAcrossTurns(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{reply("first"), reply("second")}}
	session := newTestSession(t, models)

	_, err := session.Send(context.Background(), "one")
	require.NoError(t, err)
	_, err = session.Send(context.Background(), "two")
	require.NoError(t, err)

	require.Len(t, models.calls, 2)
	second := models.calls[1]
	require.Len(t, second, 3)
	assert.Equal(t, "one", second[0].Parts[0].Text)
	assert.Equal(t, genai.RoleUser, second[0].Role)
	assert.Equal(t, "first", second[1].Parts[0].Text)
	assert.Equal(t, genai.RoleModel, second[1].Role)
	assert.Equal(t, "two", second[2].Parts[0].Text)
	assert.Equal(t, 4, session.Turns())
}

func TestSessionDropsFailedTurns(t *testing.T) {
	models := &fakeModels{
		errs:      []error{genai.APIError{Code: 503, Message: "overloaded"}, nil},
		responses: []*genai.GenerateContentResponse{nil, reply("ok")},
	}
	session := newTestSession(t, models)

	_, err := session.Send(context.Background(), "one")
	require.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Zero(t, session.Turns())

	_, err = session.Send(context.Background(), "two")
	require.NoError(t, err)
	assert.Len(t, models.calls[1], 1)
}

func TestSessionBlockedReply(t *testing.T) {
	res := reply("")
	res.PromptFeedback = &genai.GenerateContentResponsePromptFeedback{
		BlockReason:        genai.BlockedReasonSafety,
		BlockReasonMessage: "unsafe",
	}
	session := newTestSession(t, &fakeModels{responses: []*genai.GenerateContentResponse{res}})

	_, err := session.Send(context.Background(), "hello")

	assert.ErrorIs(t, err, domain.ErrReplyBlocked)
	assert.Equal(t, domain.FailureBlocked, domain.ClassifyFailure(err))
}

func TestSessionEmptyReply(t *testing.T) {
	session := newTestSession(t, &fakeModels{responses: []*genai.GenerateContentResponse{reply("   ")}})

	_, err := session.Send(context.Background(), "hello")

	assert.ErrorIs(t, err, domain.ErrEmptyReply)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unauthorized", err: genai.APIError{Code: 401}, want: domain.ErrBackendAuth},
		{name: "forbidden", err: genai.APIError{Code: 403}, want: domain.ErrBackendAuth},
		{name: "quota", err: genai.APIError{Code: 429}, want: domain.ErrBackendQuota},
		{name: "gateway timeout", err: genai.APIError{Code: 504}, want: domain.ErrBackendTimeout},
		{name: "server error", err: genai.APIError{Code: 500}, want: domain.ErrBackendUnavailable},
		{name: "wrapped", err: fmt.Errorf("call: %w", genai.APIError{Code: 429}), want: domain.ErrBackendQuota},
		{name: "deadline", err: context.DeadlineExceeded, want: domain.ErrBackendTimeout},
		{name: "network", err: errors.New("dial tcp: connection refused"), want: domain.ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ClassifyError(tt.err), tt.want)
		})
	}

	assert.NoError(t, ClassifyError(nil))
	assert.ErrorIs(t, ClassifyError(context.Canceled), context.Canceled)
}
