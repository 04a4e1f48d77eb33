package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/mira/internal/adapters/annotate"
	"github.com/bnema/mira/internal/adapters/capture/gstreamer"
	"github.com/bnema/mira/internal/adapters/detector/python"
	"github.com/bnema/mira/internal/adapters/events/mqtt"
	"github.com/bnema/mira/internal/adapters/llm/gemini"
	wardroberender "github.com/bnema/mira/internal/adapters/render/wardrobe"
	"github.com/bnema/mira/internal/adapters/repo/jsonfile"
	chainstore "github.com/bnema/mira/internal/adapters/secrets/chain"
	"github.com/bnema/mira/internal/adapters/speech/gcp"
	"github.com/bnema/mira/internal/adapters/tts/elevenlabs"
	"github.com/bnema/mira/internal/application"
	"github.com/bnema/mira/internal/config"
	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
	"github.com/bnema/mira/internal/version"
)

type app struct {
	home             string
	settings         config.Settings
	log              *observability.Logger
	reporter         ports.ErrorReporter
	flushReporter    func()
	wardrobe         *application.WardrobeService
	credentials      *application.Credentials
	wardrobeRenderer func([]domain.Item, wardroberender.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := config.NewViper(homeDir)
	settings, err := config.Load(v, homeDir)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(settings.Log.Mode, settings.Log.Level, settings.Log.Path)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	reporter, flush, err := observability.InitSentry(observability.SentryOptions{
		DSN:         settings.Sentry.DSN,
		Environment: settings.Sentry.Environment,
		Release:     version.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("wire error reporter: %w", err)
	}

	repo, err := jsonfile.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire wardrobe repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(config.Dir(homeDir), "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		home:             homeDir,
		settings:         settings,
		log:              logger,
		reporter:         reporter,
		flushReporter:    flush,
		wardrobe:         application.NewWardrobeService(repo, ports.SystemClock{}, logger),
		credentials:      application.NewCredentials(secretStore),
		wardrobeRenderer: wardroberender.Render,
		now:              time.Now,
	}, nil
}

func (a *app) close() {
	a.flushReporter()
	a.log.Sync()
}

// newComposer opens a Gemini session. live may be nil when no camera runs.
func (a *app) newComposer(ctx context.Context, live application.LiveStatusSource) (*application.Composer, error) {
	apiKey, _, err := a.credentials.Resolve(ctx, domain.GeminiCredential)
	if err != nil {
		return nil, fmt.Errorf("resolve gemini credential: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:          apiKey,
		Model:           a.settings.Gemini.Model,
		Temperature:     a.settings.Gemini.Temperature,
		TopP:            a.settings.Gemini.TopP,
		MaxOutputTokens: a.settings.Gemini.MaxOutputTokens,
		BaseURL:         a.settings.Gemini.BaseURL,
		Logger:          a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("wire gemini generator: %w", err)
	}

	return application.NewComposer(ctx, generator, a.wardrobe, live, a.log)
}

// speechOutput returns a nil synthesizer and player when mute is set or no
// ElevenLabs key is configured, which leaves replies text only.
func (a *app) speechOutput(ctx context.Context, mute bool) (ports.Synthesizer, ports.AudioPlayer, func(), error) {
	if mute {
		return nil, nil, func() {}, nil
	}

	apiKey, err := a.credentials.Lookup(ctx, domain.ElevenLabsCredential)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve elevenlabs credential: %w", err)
	}
	if apiKey == "" {
		a.log.Info("no elevenlabs credential, replies are text only")
		return nil, nil, func() {}, nil
	}

	synthesizer, err := elevenlabs.NewClient(elevenlabs.Config{
		APIKey:       apiKey,
		VoiceID:      a.settings.Voice.ID,
		ModelID:      a.settings.Voice.Model,
		OutputFormat: a.settings.Voice.OutputFormat,
		Logger:       a.log,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("wire elevenlabs client: %w", err)
	}

	player := gstreamer.NewPlayer(gstreamer.PlayerConfig{Logger: a.log})

	cleanup := func() {
		if err := player.Close(); err != nil {
			a.log.Warn("close audio player", "error", err)
		}
		if err := synthesizer.Close(); err != nil {
			a.log.Warn("close elevenlabs client", "error", err)
		}
	}

	return synthesizer, player, cleanup, nil
}

func (a *app) newSpeaker(ctx context.Context, mute bool) (*application.VoiceIO, func(), error) {
	synthesizer, player, cleanup, err := a.speechOutput(ctx, mute)
	if err != nil {
		return nil, nil, err
	}

	return application.NewVoiceIO(application.VoiceIOOptions{
		Synthesizer: synthesizer,
		Player:      player,
		Logger:      a.log,
	}), cleanup, nil
}

// newVoice is newSpeaker plus microphone capture and transcription.
func (a *app) newVoice(ctx context.Context) (*application.VoiceIO, func(), error) {
	synthesizer, player, closeOutput, err := a.speechOutput(ctx, false)
	if err != nil {
		return nil, nil, err
	}

	transcriber, err := gcp.NewTranscriber(ctx, gcp.Config{
		LanguageCode: a.settings.Voice.Language,
		Logger:       a.log,
	})
	if err != nil {
		closeOutput()
		return nil, nil, fmt.Errorf("wire speech transcriber: %w", err)
	}

	voice := application.NewVoiceIO(application.VoiceIOOptions{
		Capture:     gstreamer.NewMicrophone(gstreamer.MicrophoneConfig{Logger: a.log}),
		Transcriber: transcriber,
		Synthesizer: synthesizer,
		Player:      player,
		Logger:      a.log,
	})

	cleanup := func() {
		closeOutput()
		if err := transcriber.Close(); err != nil {
			a.log.Warn("close speech transcriber", "error", err)
		}
	}

	return voice, cleanup, nil
}

// cameraRig is the frame path: camera, detector, annotator and the optional
// snapshot sink and MQTT publisher.
type cameraRig struct {
	camera    *gstreamer.Camera
	detector  *python.Detector
	annotator *application.FrameAnnotator
	sink      ports.FrameSink
	publisher *mqtt.Publisher
	log       *observability.Logger
}

func (a *app) newCameraRig(ctx context.Context) (*cameraRig, error) {
	detector, err := python.NewDetector(python.Config{
		Argv:           a.settings.Detector.Argv(),
		Model:          a.settings.Detector.Model,
		Confidence:     a.settings.Detector.Confidence,
		Timeout:        a.settings.Detector.Timeout,
		StartupTimeout: a.settings.Detector.StartupTimeout,
		Logger:         a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("wire detector: %w", err)
	}

	rig := &cameraRig{
		camera: gstreamer.NewCamera(gstreamer.CameraConfig{
			Device: a.settings.Camera.Device,
			Width:  a.settings.Camera.Width,
			Height: a.settings.Camera.Height,
			FPS:    a.settings.Camera.FPS,
			Logger: a.log,
		}),
		detector: detector,
		annotator: application.NewFrameAnnotator(detector, a.wardrobe, application.FrameAnnotatorOptions{
			Painter: annotate.NewPainter(),
			Logger:  a.log,
		}),
		log: a.log,
	}

	if path := a.settings.Camera.SnapshotPath; path != "" {
		rig.sink = annotate.NewSnapshotSink(path)
	}

	if a.settings.MQTT.Enabled() {
		publisher, err := mqtt.Connect(ctx, mqtt.Config{
			Broker:   a.settings.MQTT.Broker,
			Topic:    a.settings.MQTT.Topic,
			ClientID: a.settings.MQTT.ClientID,
			Logger:   a.log,
		})
		if err != nil {
			a.log.Warn("mqtt disabled", "error", err)
		} else {
			rig.publisher = publisher
		}
	}

	return rig, nil
}

// listen routes item-saved notifications to listener and, when connected, to
// the MQTT publisher.
func (r *cameraRig) listen(listener ports.ItemSavedListener) {
	listeners := application.ItemSavedListeners{listener}
	if r.publisher != nil {
		listeners = append(listeners, r.publisher)
	}
	r.annotator.SetListener(listeners)
}

func (r *cameraRig) run(ctx context.Context) error {
	return application.RunFrameLoop(ctx, r.camera, r.annotator, r.sink, r.log)
}

func (r *cameraRig) close() error {
	var errs error
	if err := r.detector.Close(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("close detector: %w", err))
	}
	if r.publisher != nil {
		if err := r.publisher.Close(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("close mqtt publisher: %w", err))
		}
	}
	return errs
}
