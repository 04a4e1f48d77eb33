package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
	"github.com/google/uuid"
)

type WardrobeService struct {
	repo  ports.WardrobeRepository
	clock ports.Clock
	log   *observability.Logger
	newID func() string
}

func NewWardrobeService(repo ports.WardrobeRepository, clock ports.Clock, log *observability.Logger) *WardrobeService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = observability.NewNop()
	}

	return &WardrobeService{
		repo:  repo,
		clock: clock,
		log:   log.With("component", "wardrobe"),
		newID: uuid.NewString,
	}
}

// Load never fails: a missing or unreadable wardrobe is reported as empty.
func (s *WardrobeService) Load(ctx context.Context) []domain.Item {
	items, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptWardrobe) {
			s.log.Warn("wardrobe document is corrupt, treating as empty", "error", err)
		} else {
			s.log.Error("load wardrobe", "error", err)
		}
		return []domain.Item{}
	}
	if items == nil {
		return []domain.Item{}
	}

	return items
}

// Append stamps the item with a fresh id and the current time, overwriting
// whatever the caller supplied, and persists it.
func (s *WardrobeService) Append(ctx context.Context, item domain.Item) (domain.Item, error) {
	item.ID = s.newID()
	item.AddedOn = s.clock.Now()
	item.Label = strings.TrimSpace(item.Label)
	if item.Color == "" {
		item.Color = domain.UnknownColor
	}

	if err := s.repo.Append(ctx, item); err != nil {
		return domain.Item{}, fmt.Errorf("append wardrobe item: %w", err)
	}

	s.log.Info("wardrobe item saved", "id", item.ID, "label", item.Label, "color", item.Color, "confidence", item.Confidence)

	return item, nil
}

func (s *WardrobeService) Summarize(ctx context.Context) string {
	return domain.Summarize(s.Load(ctx))
}
