package gstreamer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

const frameBuffer = 2

var ErrCameraRunning = errors.New("camera already started")

type CameraConfig struct {
	Device string
	Width  int
	Height int
	FPS    int
	Logger *observability.Logger
}

// Camera captures JPEG frames from a V4L2 device:
//
//	v4l2src -> videoconvert -> videoscale -> videorate -> capsfilter -> jpegenc -> appsink
//
// Frames are dropped rather than queued when the consumer falls behind.
type Camera struct {
	cfg CameraConfig
	log *observability.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	seq     atomic.Uint64
	dropped atomic.Uint64
}

var _ ports.FrameSource = (*Camera)(nil)

func NewCamera(cfg CameraConfig) *Camera {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 5
	}

	return &Camera{cfg: cfg, log: loggerOrNop(cfg.Logger).With("component", "camera", "device", cfg.Device)}
}

// CapsString is the raw video format requested before JPEG encoding.
func (c *Camera) CapsString() string {
	return fmt.Sprintf("video/x-raw,width=%d,height=%d,framerate=%d/1", c.cfg.Width, c.cfg.Height, c.cfg.FPS)
}

func (c *Camera) Start(ctx context.Context) (<-chan domain.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return nil, ErrCameraRunning
	}

	pipeline, sink, err := buildPipeline(
		[]string{"v4l2src", "videoconvert", "videoscale", "videorate", "capsfilter", "jpegenc"},
		func(name string, elem *gst.Element) {
			switch name {
			case "v4l2src":
				if c.cfg.Device != "" {
					elem.SetProperty("device", c.cfg.Device)
				}
			case "videorate":
				elem.SetProperty("drop-only", true)
			case "capsfilter":
				elem.SetProperty("caps", gst.NewCapsFromString(c.CapsString()))
			}
		},
	)
	if err != nil {
		return nil, err
	}
	sink.SetProperty("max-buffers", 1)
	sink.SetProperty("drop", true)

	frames := make(chan domain.Frame, frameBuffer)
	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: func(s *app.Sink) gst.FlowReturn {
			c.onSample(s, frames)
			return gst.FlowOK
		},
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		_ = pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("%w: start camera: %v", domain.ErrDeviceUnavailable, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		defer close(frames)

		err := watchBus(runCtx, pipeline, c.log)
		if stopErr := pipeline.SetState(gst.StateNull); stopErr != nil {
			c.log.Warn("stop camera pipeline", "error", stopErr)
		}

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.log.Debug("camera stopped", "frames", c.seq.Load(), "dropped", c.dropped.Load())
		case errors.Is(err, errEndOfStream):
			c.log.Info("camera end of stream", "frames", c.seq.Load())
		default:
			c.log.Error("camera failed", "error", err)
		}
	}()

	c.log.Info("camera started", "caps", c.CapsString())
	return frames, nil
}

func (c *Camera) onSample(sink *app.Sink, frames chan<- domain.Frame) {
	data := pullBytes(sink)
	if data == nil {
		return
	}

	frame := domain.Frame{
		Seq:        c.seq.Add(1),
		TraceID:    uuid.NewString(),
		CapturedAt: time.Now(),
		Width:      c.cfg.Width,
		Height:     c.cfg.Height,
		Data:       data,
	}

	select {
	case frames <- frame:
	default:
		c.dropped.Add(1)
	}
}

// Stop halts the pipeline and waits until the frame channel is closed.
func (c *Camera) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	<-done
	return nil
}
