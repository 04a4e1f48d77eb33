package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

type FrameAnnotatorOptions struct {
	Painter  ports.FramePainter
	Listener ports.ItemSavedListener
	Labels   domain.LabelTable
	Clock    ports.Clock
	Logger   *observability.Logger
}

type FrameAnnotator struct {
	detector ports.ObjectDetector
	wardrobe *WardrobeService
	painter  ports.FramePainter
	listener ports.ItemSavedListener
	labels   domain.LabelTable
	clock    ports.Clock
	log      *observability.Logger

	mu       sync.Mutex
	lastSave time.Time
	status   atomic.Pointer[string]
}

func NewFrameAnnotator(detector ports.ObjectDetector, wardrobe *WardrobeService, opts FrameAnnotatorOptions) *FrameAnnotator {
	if opts.Labels == nil {
		opts.Labels = domain.DefaultLabelTable
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = observability.NewNop()
	}

	a := &FrameAnnotator{
		detector: detector,
		wardrobe: wardrobe,
		painter:  opts.Painter,
		listener: opts.Listener,
		labels:   opts.Labels,
		clock:    opts.Clock,
		log:      opts.Logger.With("component", "annotator"),
	}
	a.setStatus(domain.NothingInFocus)

	return a
}

// SetListener replaces the item-saved listener. It must be called before the
// frame loop starts.
func (a *FrameAnnotator) SetListener(listener ports.ItemSavedListener) {
	a.listener = listener
}

// LiveStatus returns the description of the most recently processed frame.
func (a *FrameAnnotator) LiveStatus() string {
	if status := a.status.Load(); status != nil {
		return *status
	}
	return domain.NothingInFocus
}

func (a *FrameAnnotator) setStatus(status string) {
	a.status.Store(&status)
}

// ProcessFrame runs detection on one frame, draws the surviving items and
// persists them when the debounce window has passed. On detector failure the
// original frame is returned together with the error.
func (a *FrameAnnotator) ProcessFrame(ctx context.Context, frame domain.Frame) (domain.Frame, error) {
	detections, err := a.detector.Detect(ctx, frame)
	if err != nil {
		return frame, fmt.Errorf("detect objects in frame %d: %w", frame.Seq, err)
	}

	items := a.itemsFrom(detections)
	if len(items) == 0 {
		a.setStatus(domain.NothingInFocus)
		return frame, nil
	}

	annotated := a.paint(frame, items)

	a.setStatus(domain.LiveStatusFor(items))
	a.persist(ctx, frame, items)

	return annotated, nil
}

func (a *FrameAnnotator) itemsFrom(detections []domain.Detection) []domain.Item {
	items := make([]domain.Item, 0, len(detections))
	for _, detection := range detections {
		// Negated so NaN confidences are dropped too.
		if !(detection.Confidence >= domain.ConfidenceThreshold) {
			continue
		}

		label := a.labels.Label(detection)
		if domain.IsPerson(label) {
			continue
		}

		items = append(items, domain.Item{
			Label:      label,
			Confidence: domain.RoundConfidence(detection.Confidence),
			BBox:       detection.BBox,
			ClassID:    detection.ClassID,
			Color:      domain.UnknownColor,
		})
	}

	return items
}

// paint samples item colors and draws the items, decoding the frame once.
// Items keep the unknown color and the original frame is returned when the
// frame cannot be decoded or drawn.
func (a *FrameAnnotator) paint(frame domain.Frame, items []domain.Item) domain.Frame {
	if a.painter == nil {
		return frame
	}

	img, err := a.painter.Decode(frame)
	if err != nil {
		a.log.Warn("decode frame", "seq", frame.Seq, "trace_id", frame.TraceID, "error", err)
		return frame
	}

	boxes := make([]domain.BBox, len(items))
	for i, item := range items {
		boxes[i] = item.BBox
	}

	colors := a.painter.Colors(img, boxes)
	for i := range items {
		if i < len(colors) && colors[i] != "" {
			items[i].Color = colors[i]
		}
	}

	painted, err := a.painter.Paint(frame, img, items)
	if err != nil {
		a.log.Warn("paint frame", "seq", frame.Seq, "trace_id", frame.TraceID, "error", err)
		return frame
	}

	return painted
}

func (a *FrameAnnotator) persist(ctx context.Context, frame domain.Frame, items []domain.Item) {
	a.mu.Lock()
	now := a.clock.Now()
	if !a.lastSave.IsZero() && now.Sub(a.lastSave) < domain.DebouncePeriod {
		a.mu.Unlock()
		return
	}
	a.lastSave = now
	a.mu.Unlock()

	for _, item := range items {
		saved, err := a.wardrobe.Append(ctx, item)
		if err != nil {
			a.log.Error("persist detected item", "seq", frame.Seq, "trace_id", frame.TraceID, "label", item.Label, "error", err)
			continue
		}

		if a.listener == nil {
			continue
		}
		if err := a.listener.OnItemSaved(ctx, saved); err != nil {
			a.log.Warn("item saved listener", "label", saved.Label, "error", err)
		}
	}
}

type FrameProcessor interface {
	ProcessFrame(ctx context.Context, frame domain.Frame) (domain.Frame, error)
}

// RunFrameLoop feeds frames from source through processor into sink until ctx
// is done or the source closes. Only a failure to start the source is
// returned; per-frame errors are logged.
func RunFrameLoop(ctx context.Context, source ports.FrameSource, processor FrameProcessor, sink ports.FrameSink, log *observability.Logger) error {
	if log == nil {
		log = observability.NewNop()
	}
	log = log.With("component", "frame_loop")

	frames, err := source.Start(ctx)
	if err != nil {
		return fmt.Errorf("start frame source: %w", err)
	}
	defer func() {
		if err := source.Stop(); err != nil {
			log.Warn("stop frame source", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-frames:
			if !ok {
				return nil
			}

			annotated, err := processor.ProcessFrame(ctx, frame)
			if err != nil {
				log.Warn("process frame", "seq", frame.Seq, "trace_id", frame.TraceID, "error", err)
			}

			if sink == nil {
				continue
			}
			if err := sink.WriteFrame(ctx, annotated); err != nil {
				log.Warn("write annotated frame", "seq", frame.Seq, "error", err)
			}
		}
	}
}
