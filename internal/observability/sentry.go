package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/mira/internal/ports"
	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

type SentryOptions struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry configures the global sentry client. With an empty DSN nothing is
// initialised and a no-op reporter is returned.
func InitSentry(opts SentryOptions) (ports.ErrorReporter, func(), error) {
	if opts.DSN == "" {
		return ports.NopReporter{}, func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     "mira@" + opts.Release,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init sentry: %w", err)
	}

	flush := func() {
		sentry.Flush(flushTimeout)
	}

	return NewSentryReporter(sentry.CurrentHub()), flush, nil
}

type SentryReporter struct {
	hub *sentry.Hub
}

var _ ports.ErrorReporter = (*SentryReporter)(nil)

func NewSentryReporter(hub *sentry.Hub) *SentryReporter {
	return &SentryReporter{hub: hub}
}

// Capture sends err to sentry. A hub attached to ctx wins over the default
// one so callers can scope tags per command.
func (r *SentryReporter) Capture(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := r.hub
	if ctx != nil {
		if ctxHub := sentry.GetHubFromContext(ctx); ctxHub != nil {
			hub = ctxHub
		}
	}
	if hub == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if commandID, ok := CommandIDFromContext(ctx); ok {
			scope.SetTag("command_id", commandID)
		}
		hub.CaptureException(err)
	})
}

type ctxKey string

const ctxKeyCommandID ctxKey = "command_id"

func WithCommandID(ctx context.Context, commandID string) context.Context {
	return context.WithValue(ctx, ctxKeyCommandID, commandID)
}

func CommandIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	commandID, ok := ctx.Value(ctxKeyCommandID).(string)
	return commandID, ok && commandID != ""
}
