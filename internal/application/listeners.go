package application

import (
	"context"
	"errors"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
)

// ItemSavedListeners fans one notification out to every listener. All
// listeners run even when an earlier one fails.
type ItemSavedListeners []ports.ItemSavedListener

var _ ports.ItemSavedListener = ItemSavedListeners(nil)

func (l ItemSavedListeners) OnItemSaved(ctx context.Context, item domain.Item) error {
	var errs error
	for _, listener := range l {
		if listener == nil {
			continue
		}
		if err := listener.OnItemSaved(ctx, item); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}

type ItemSavedFunc func(ctx context.Context, item domain.Item) error

func (f ItemSavedFunc) OnItemSaved(ctx context.Context, item domain.Item) error {
	return f(ctx, item)
}
