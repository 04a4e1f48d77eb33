// Package gstreamer drives the webcam, the microphone and audio playback
// through GStreamer pipelines.
package gstreamer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
)

const busPollInterval = 50 * time.Millisecond

var (
	initOnce sync.Once

	errEndOfStream = errors.New("end of stream")
)

func initGStreamer() {
	initOnce.Do(func() {
		gst.Init(nil)
	})
}

// buildPipeline adds the named elements to a new pipeline and links them in
// order. The last element is always an appsink.
func buildPipeline(names []string, configure func(name string, elem *gst.Element)) (*gst.Pipeline, *app.Sink, error) {
	initGStreamer()

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create pipeline: %v", domain.ErrDeviceUnavailable, err)
	}

	elements := make([]*gst.Element, 0, len(names)+1)
	for _, name := range names {
		elem, err := gst.NewElement(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: create %s: %v", domain.ErrDeviceUnavailable, name, err)
		}
		if configure != nil {
			configure(name, elem)
		}
		elements = append(elements, elem)
	}

	sink, err := app.NewAppSink()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create appsink: %v", domain.ErrDeviceUnavailable, err)
	}
	sink.SetProperty("sync", false)
	elements = append(elements, sink.Element)

	if err := pipeline.AddMany(elements...); err != nil {
		return nil, nil, fmt.Errorf("add pipeline elements: %w", err)
	}
	if err := gst.ElementLinkMany(elements...); err != nil {
		return nil, nil, fmt.Errorf("link pipeline elements: %w", err)
	}

	return pipeline, sink, nil
}

// pullBytes copies the next sample out of the appsink. GStreamer reuses the
// buffer once it is unmapped.
func pullBytes(sink *app.Sink) []byte {
	sample := sink.PullSample()
	if sample == nil {
		return nil
	}
	buffer := sample.GetBuffer()
	if buffer == nil {
		return nil
	}

	mapInfo := buffer.Map(gst.MapRead)
	defer buffer.Unmap()

	data := mapInfo.Bytes()
	if len(data) == 0 {
		return nil
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out
}

// watchBus blocks until the pipeline reports end of stream, an error, or ctx
// is done. End of stream is returned as errEndOfStream.
func watchBus(ctx context.Context, pipeline *gst.Pipeline, log *observability.Logger) error {
	bus := pipeline.GetPipelineBus()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg := bus.TimedPop(busPollInterval)
		if msg == nil {
			continue
		}

		switch msg.Type() {
		case gst.MessageEOS:
			return errEndOfStream
		case gst.MessageError:
			gerr := msg.ParseError()
			log.Error("gstreamer pipeline error", "error", gerr.Error(), "debug", gerr.DebugString())
			return fmt.Errorf("%w: %s", domain.ErrDeviceUnavailable, gerr.Error())
		case gst.MessageWarning:
			gerr := msg.ParseWarning()
			log.Warn("gstreamer pipeline warning", "warning", gerr.Error())
		}
	}
}

func loggerOrNop(log *observability.Logger) *observability.Logger {
	if log == nil {
		return observability.NewNop()
	}
	return log
}
