package ports

import (
	"context"
	"image"

	"github.com/bnema/mira/internal/domain"
)

type ObjectDetector interface {
	Detect(ctx context.Context, frame domain.Frame) ([]domain.Detection, error)
	Close() error
}

// FramePainter samples garment colors and draws items onto a frame. A frame
// is decoded once and the image is shared by Colors and Paint.
type FramePainter interface {
	Decode(frame domain.Frame) (image.Image, error)
	Colors(img image.Image, boxes []domain.BBox) []string
	Paint(frame domain.Frame, img image.Image, items []domain.Item) (domain.Frame, error)
}

type FrameSource interface {
	Start(ctx context.Context) (<-chan domain.Frame, error)
	Stop() error
}

type FrameSink interface {
	WriteFrame(ctx context.Context, frame domain.Frame) error
}

type ItemSavedListener interface {
	OnItemSaved(ctx context.Context, item domain.Item) error
}
