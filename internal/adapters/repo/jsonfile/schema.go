package jsonfile

import (
	"time"

	"github.com/bnema/mira/internal/domain"
)

const pythonISOLayout = "2006-01-02T15:04:05.999999"

type itemSchema struct {
	ID         string     `json:"id,omitempty"`
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
	ClassID    int        `json:"class_id"`
	Color      string     `json:"color"`
	AddedOn    string     `json:"added_on"`
}

func toSchema(item domain.Item) itemSchema {
	return itemSchema{
		ID:         item.ID,
		Label:      item.Label,
		Confidence: item.Confidence,
		BBox:       [4]float64{item.BBox.X1, item.BBox.Y1, item.BBox.X2, item.BBox.Y2},
		ClassID:    item.ClassID,
		Color:      item.Color,
		AddedOn:    formatTime(item.AddedOn),
	}
}

func fromSchema(entry itemSchema) domain.Item {
	return domain.Item{
		ID:         entry.ID,
		Label:      entry.Label,
		Confidence: entry.Confidence,
		BBox: domain.BBox{
			X1: entry.BBox[0],
			Y1: entry.BBox[1],
			X2: entry.BBox[2],
			Y2: entry.BBox[3],
		},
		ClassID: entry.ClassID,
		Color:   entry.Color,
		AddedOn: parseTime(entry.AddedOn),
	}
}

// parseTime accepts RFC 3339 and the zone-less isoformat() stamps written by
// earlier versions of the wardrobe file.
func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed
	}

	parsed, err := time.ParseInLocation(pythonISOLayout, raw, time.Local)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339Nano)
}
