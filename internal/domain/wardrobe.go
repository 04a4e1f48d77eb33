package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	EmptyWardrobeSentence = "The virtual wardrobe is currently empty."
	wardrobeSummaryHeader = "Current virtual wardrobe items:"
	unknownItemLabel      = "unknown item"
	UnknownColor          = "unknown"
)

type BBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

func (b BBox) Width() float64 {
	return math.Max(0, b.X2-b.X1)
}

func (b BBox) Height() float64 {
	return math.Max(0, b.Y2-b.Y1)
}

// Item is one garment-like object saved to the wardrobe. AddedOn and ID are
// assigned by the store when the item is appended.
type Item struct {
	ID         string
	Label      string
	Confidence float64
	BBox       BBox
	ClassID    int
	Color      string
	AddedOn    time.Time
}

func (i Item) DisplayLabel() string {
	if strings.TrimSpace(i.Label) == "" {
		return unknownItemLabel
	}

	return i.Label
}

func (i Item) Describe() string {
	color := i.Color
	if color == "" {
		color = UnknownColor
	}

	return fmt.Sprintf("%s (%s)", i.DisplayLabel(), color)
}

// Summarize renders the grounding view of the wardrobe: one line per distinct
// label in first-seen order.
func Summarize(items []Item) string {
	if len(items) == 0 {
		return EmptyWardrobeSentence
	}

	order := make([]string, 0, len(items))
	counts := make(map[string]int, len(items))
	for _, item := range items {
		label := item.DisplayLabel()
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	var b strings.Builder
	b.WriteString(wardrobeSummaryHeader)
	b.WriteString("\n")
	for _, label := range order {
		fmt.Fprintf(&b, "- %d x %s\n", counts[label], label)
	}

	return strings.TrimSpace(b.String())
}

func RoundConfidence(value float64) float64 {
	return math.Round(value*100) / 100
}
