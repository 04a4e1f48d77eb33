package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{
			name: "empty",
			want: EmptyWardrobeSentence,
		},
		{
			name:  "single item",
			items: []Item{{Label: "tie"}},
			want:  "Current virtual wardrobe items:\n- 1 x tie",
		},
		{
			name: "grouped in first seen order",
			items: []Item{
				{Label: "handbag"},
				{Label: "tie"},
				{Label: "handbag"},
				{Label: "backpack"},
				{Label: "tie"},
				{Label: "handbag"},
			},
			want: "Current virtual wardrobe items:\n- 3 x handbag\n- 2 x tie\n- 1 x backpack",
		},
		{
			name:  "missing label",
			items: []Item{{Label: ""}, {Label: "  "}, {Label: "tie"}},
			want:  "Current virtual wardrobe items:\n- 2 x unknown item\n- 1 x tie",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Summarize(tc.items))
		})
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	t.Parallel()

	items := []Item{{Label: "umbrella"}, {Label: "tie"}, {Label: "umbrella"}}
	assert.Equal(t, Summarize(items), Summarize(items))
}

func TestItemDescribe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tie (navy)", Item{Label: "tie", Color: "navy"}.Describe())
	assert.Equal(t, "handbag (unknown)", Item{Label: "handbag"}.Describe())
	assert.Equal(t, "unknown item (red)", Item{Color: "red"}.Describe())
}

func TestRoundConfidence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.87, RoundConfidence(0.8666))
	assert.Equal(t, 0.5, RoundConfidence(0.499999))
	assert.Equal(t, 1.0, RoundConfidence(1))
}

func TestBBoxDimensionsClampNegative(t *testing.T) {
	t.Parallel()

	box := BBox{X1: 10, Y1: 20, X2: 5, Y2: 60}
	assert.Equal(t, 0.0, box.Width())
	assert.Equal(t, 40.0, box.Height())
}
