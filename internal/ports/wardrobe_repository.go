package ports

import (
	"context"

	"github.com/bnema/mira/internal/domain"
)

type WardrobeRepository interface {
	Load(ctx context.Context) ([]domain.Item, error)
	Append(ctx context.Context, item domain.Item) error
}
