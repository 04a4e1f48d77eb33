package ports

import "context"

type ErrorReporter interface {
	Capture(ctx context.Context, err error)
}

type NopReporter struct{}

func (NopReporter) Capture(context.Context, error) {}
