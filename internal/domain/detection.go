package domain

import (
	"strings"
	"time"
)

const (
	ConfidenceThreshold = 0.5
	DebouncePeriod      = 5 * time.Second
	PersonLabel         = "person"
	NothingInFocus      = "Nothing in focus."
)

// Frame is one camera image. Data holds the JPEG-encoded picture.
type Frame struct {
	Seq        uint64
	TraceID    string
	CapturedAt time.Time
	Width      int
	Height     int
	Data       []byte
}

type Detection struct {
	ClassID      int
	Confidence   float64
	BBox         BBox
	BackendLabel string
}

type LabelTable map[int]string

// DefaultLabelTable maps the YOLO (80-class COCO) ids that stand in for
// wardrobe pieces to the labels shown to the user.
var DefaultLabelTable = LabelTable{
	24: "backpack",
	25: "umbrella",
	26: "handbag",
	27: "tie",
	28: "suitcase",
	39: "bottle",
}

func (t LabelTable) Label(d Detection) string {
	if label, ok := t[d.ClassID]; ok {
		return label
	}
	if label := strings.TrimSpace(d.BackendLabel); label != "" {
		return label
	}

	return unknownItemLabel
}

func IsPerson(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), PersonLabel)
}

func LiveStatusFor(items []Item) string {
	if len(items) == 0 {
		return NothingInFocus
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Describe())
	}

	return strings.Join(parts, ", ")
}

func ItemSavedSentence(item Item) string {
	return "I've saved the " + item.DisplayLabel() + " to your virtual wardrobe!"
}
