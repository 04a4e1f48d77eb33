package gstreamer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync"

	"github.com/tinyzimmer/go-gst/gst"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

type PlayerConfig struct {
	// TempDir holds the audio file while it plays; empty uses os.TempDir.
	TempDir string
	Logger  *observability.Logger
}

// Player plays encoded audio through playbin. Plays never overlap: each clip
// waits for the previous one to finish. Background plays return at once and
// queue on their own goroutine until Close.
type Player struct {
	cfg  PlayerConfig
	log  *observability.Logger
	slot chan struct{}

	background context.Context
	stop       context.CancelFunc
	wg         sync.WaitGroup
}

var _ ports.AudioPlayer = (*Player)(nil)

func NewPlayer(cfg PlayerConfig) *Player {
	background, stop := context.WithCancel(context.Background())

	return &Player{
		cfg:        cfg,
		log:        loggerOrNop(cfg.Logger).With("component", "player"),
		slot:       make(chan struct{}, 1),
		background: background,
		stop:       stop,
	}
}

func (p *Player) Play(ctx context.Context, audio []byte, waitForCompletion bool) error {
	if len(audio) == 0 {
		return nil
	}

	if waitForCompletion {
		return p.play(ctx, audio)
	}

	if err := p.background.Err(); err != nil {
		return fmt.Errorf("player closed: %w", err)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.play(p.background, audio); err != nil && !errors.Is(err, context.Canceled) {
			p.log.Warn("background playback", "error", err)
		}
	}()

	return nil
}

// Close stops queued and running background clips and waits for them.
func (p *Player) Close() error {
	p.stop()
	p.wg.Wait()
	return nil
}

// play takes the slot and plays audio to the end.
func (p *Player) play(ctx context.Context, audio []byte) error {
	select {
	case p.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.slot }()

	path, err := p.writeTemp(audio)
	if err != nil {
		return err
	}

	pipeline, err := p.startPlaybin(path)
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	return p.finish(ctx, pipeline, path)
}

func (p *Player) writeTemp(audio []byte) (string, error) {
	f, err := os.CreateTemp(p.cfg.TempDir, "mira-speech-*.mp3")
	if err != nil {
		return "", fmt.Errorf("create audio temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(audio); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write audio temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close audio temp file: %w", err)
	}

	return path, nil
}

func (p *Player) startPlaybin(path string) (*gst.Pipeline, error) {
	initGStreamer()

	pipeline, err := gst.NewPipelineFromString(PlaybinDescription(path))
	if err != nil {
		return nil, fmt.Errorf("%w: create playbin: %v", domain.ErrDeviceUnavailable, err)
	}
	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		_ = pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("%w: start playback: %v", domain.ErrDeviceUnavailable, err)
	}

	return pipeline, nil
}

func (p *Player) finish(ctx context.Context, pipeline *gst.Pipeline, path string) error {
	err := watchBus(ctx, pipeline, p.log)
	if stopErr := pipeline.SetState(gst.StateNull); stopErr != nil {
		p.log.Warn("stop playback pipeline", "error", stopErr)
	}
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		p.log.Warn("remove audio temp file", "path", path, "error", rmErr)
	}

	if errors.Is(err, errEndOfStream) {
		return nil
	}
	if err != nil {
		p.log.Warn("playback interrupted", "error", err)
	}
	return err
}

// PlaybinDescription is the gst-launch description playing the file at path.
func PlaybinDescription(path string) string {
	uri := url.URL{Scheme: "file", Path: path}
	return fmt.Sprintf("playbin uri=%q", uri.String())
}
