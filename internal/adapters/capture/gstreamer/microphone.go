package gstreamer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/bnema/mira/internal/adapters/capture/vad"
	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

const (
	DefaultSampleRate = 16000

	chunkBuffer = 64
	// Extra wall-clock time granted on top of the audio budget before a
	// silent device is treated as broken.
	deviceGrace = 2 * time.Second
)

type MicrophoneConfig struct {
	// Device is a pulsesrc device name; empty uses autoaudiosrc.
	Device     string
	SampleRate int
	Logger     *observability.Logger
}

type Microphone struct {
	cfg MicrophoneConfig
	log *observability.Logger
}

var _ ports.AudioCapture = (*Microphone)(nil)

func NewMicrophone(cfg MicrophoneConfig) *Microphone {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}

	return &Microphone{cfg: cfg, log: loggerOrNop(cfg.Logger).With("component", "microphone")}
}

func (m *Microphone) CapsString() string {
	return fmt.Sprintf("audio/x-raw,format=S16LE,channels=1,rate=%d", m.cfg.SampleRate)
}

// Capture opens the device, calibrates on the first half second of audio and
// returns one phrase. The pipeline only lives for the duration of the call.
func (m *Microphone) Capture(ctx context.Context, opts ports.CaptureOptions) (domain.AudioClip, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = domain.DefaultListenTimeout
	}
	if opts.PhraseLimit <= 0 {
		opts.PhraseLimit = domain.DefaultPhraseLimit
	}

	source := "autoaudiosrc"
	if m.cfg.Device != "" {
		source = "pulsesrc"
	}

	pipeline, sink, err := buildPipeline(
		[]string{source, "audioconvert", "audioresample", "capsfilter"},
		func(name string, elem *gst.Element) {
			switch name {
			case "pulsesrc":
				elem.SetProperty("device", m.cfg.Device)
			case "capsfilter":
				elem.SetProperty("caps", gst.NewCapsFromString(m.CapsString()))
			}
		},
	)
	if err != nil {
		return domain.AudioClip{}, err
	}

	chunks := make(chan []byte, chunkBuffer)
	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: func(s *app.Sink) gst.FlowReturn {
			if data := pullBytes(s); data != nil {
				select {
				case chunks <- data:
				default:
				}
			}
			return gst.FlowOK
		},
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		_ = pipeline.SetState(gst.StateNull)
		return domain.AudioClip{}, fmt.Errorf("%w: start microphone: %v", domain.ErrDeviceUnavailable, err)
	}
	defer func() {
		if err := pipeline.SetState(gst.StateNull); err != nil {
			m.log.Warn("stop microphone pipeline", "error", err)
		}
	}()

	busCtx, stopBus := context.WithCancel(ctx)
	defer stopBus()
	busErr := make(chan error, 1)
	go func() {
		busErr <- watchBus(busCtx, pipeline, m.log)
	}()

	segmenter := vad.New(vad.Config{
		SampleRate:  m.cfg.SampleRate,
		Calibration: vad.DefaultCalibration,
		Timeout:     opts.Timeout,
		PhraseLimit: opts.PhraseLimit,
		PreRoll:     vad.DefaultPreRoll,
	})

	pcm, err := segment(ctx, segmenter, chunks, busErr, vad.DefaultCalibration+opts.Timeout+opts.PhraseLimit+deviceGrace)
	if err != nil {
		return domain.AudioClip{}, err
	}

	clip := domain.AudioClip{PCM: pcm, SampleRate: m.cfg.SampleRate}
	m.log.Debug("phrase captured", "duration", clip.Duration(), "threshold", segmenter.Threshold())
	return clip, nil
}

// segment feeds audio chunks into the segmenter until it finishes. budget is
// a wall-clock limit that only trips when the device stops delivering audio.
func segment(ctx context.Context, s *vad.Segmenter, chunks <-chan []byte, busErr <-chan error, budget time.Duration) ([]byte, error) {
	deadline := time.NewTimer(budget)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-busErr:
			if errors.Is(err, errEndOfStream) {
				return nil, fmt.Errorf("%w: audio source ended", domain.ErrDeviceUnavailable)
			}
			if err == nil || errors.Is(err, context.Canceled) {
				return nil, ctx.Err()
			}
			return nil, err
		case <-deadline.C:
			return nil, fmt.Errorf("%w: no audio received in %s", domain.ErrDeviceUnavailable, budget)
		case chunk := <-chunks:
			switch s.Feed(chunk) {
			case vad.StateDone:
				return s.Clip(), nil
			case vad.StateTimedOut:
				return nil, domain.ErrNoSpeech
			}
		}
	}
}
