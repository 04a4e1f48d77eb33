package application

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWardrobeServiceAppendStampsIDAndTime(t *testing.T) {
	repo := mocks.NewMockWardrobeRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewWardrobeService(repo, clock, nil)

	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now)
	repo.EXPECT().Append(mockAnyContext(), mock.MatchedBy(func(item domain.Item) bool {
		return item.ID != "" && item.AddedOn.Equal(now) && item.Label == "tie" && item.Color == domain.UnknownColor
	})).Return(nil)

	saved, err := service.Append(context.Background(), domain.Item{
		ID:      "caller-id",
		Label:   " tie ",
		AddedOn: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEqual(t, "caller-id", saved.ID)
	assert.True(t, saved.AddedOn.Equal(now))
	assert.Equal(t, "tie", saved.Label)
}

func TestWardrobeServiceAppendWrapsRepositoryError(t *testing.T) {
	repo := mocks.NewMockWardrobeRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewWardrobeService(repo, clock, nil)

	clock.EXPECT().Now().Return(time.Now())
	repo.EXPECT().Append(mockAnyContext(), mock.Anything).Return(errors.New("disk full"))

	_, err := service.Append(context.Background(), domain.Item{Label: "tie"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append wardrobe item")
}

func TestWardrobeServiceLoadSwallowsErrors(t *testing.T) {
	repo := mocks.NewMockWardrobeRepository(t)
	service := NewWardrobeService(repo, nil, nil)

	repo.EXPECT().Load(mockAnyContext()).Return(nil, errors.New("permission denied")).Once()
	repo.EXPECT().Load(mockAnyContext()).Return([]domain.Item{}, domain.ErrCorruptWardrobe).Once()

	assert.Empty(t, service.Load(context.Background()))
	assert.Equal(t, domain.EmptyWardrobeSentence, service.Summarize(context.Background()))
}

func TestWardrobeServiceMalformedAndAbsentDocumentsSummarizeAsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "absent"},
		{name: "empty", content: strPtr("")},
		{name: "whitespace", content: strPtr("  \n")},
		{name: "malformed", content: strPtr("{\"label\":")},
		{name: "wrong shape", content: strPtr("{\"items\": 3}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, path := newTempWardrobe(t, nil)
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o600))
			}

			assert.Empty(t, service.Load(context.Background()))
			assert.Equal(t, domain.EmptyWardrobeSentence, service.Summarize(context.Background()))
		})
	}
}

func TestWardrobeServiceItemsSurviveRestartInOrder(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))
	service, path := newTempWardrobe(t, clock)

	labels := []string{"tie", "handbag", "tie", "umbrella"}
	for _, label := range labels {
		_, err := service.Append(context.Background(), domain.Item{Label: label, Confidence: 0.8})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	restarted, _ := newTempWardrobeAt(t, path)
	items := restarted.Load(context.Background())
	require.Len(t, items, len(labels))

	for i, item := range items {
		assert.Equal(t, labels[i], item.Label)
		assert.False(t, item.AddedOn.IsZero())
		if i > 0 {
			assert.False(t, item.AddedOn.Before(items[i-1].AddedOn))
		}
	}

	first := restarted.Summarize(context.Background())
	second := restarted.Summarize(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, "Current virtual wardrobe items:\n- 2 x tie\n- 1 x handbag\n- 1 x umbrella", first)
}

func strPtr(value string) *string {
	return &value
}
