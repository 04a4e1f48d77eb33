package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// document is the on-disk shape of config.toml. Durations are kept as
// strings so the file stays hand-editable.
type document struct {
	Wardrobe struct {
		Path string `toml:"path"`
	} `toml:"wardrobe"`
	Log struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
		Mode  string `toml:"mode"`
	} `toml:"log"`
	Gemini struct {
		Model           string  `toml:"model"`
		Temperature     float32 `toml:"temperature"`
		TopP            float32 `toml:"top_p"`
		MaxOutputTokens int32   `toml:"max_output_tokens"`
		BaseURL         string  `toml:"base_url"`
	} `toml:"gemini"`
	Voice struct {
		ID            string `toml:"id"`
		Model         string `toml:"model"`
		OutputFormat  string `toml:"output_format"`
		ListenTimeout string `toml:"listen_timeout"`
		PhraseLimit   string `toml:"phrase_limit"`
		Language      string `toml:"language"`
	} `toml:"voice"`
	Detector struct {
		Command        string  `toml:"command"`
		Model          string  `toml:"model"`
		Confidence     float64 `toml:"confidence"`
		Timeout        string  `toml:"timeout"`
		StartupTimeout string  `toml:"startup_timeout"`
	} `toml:"detector"`
	Camera struct {
		Device       string `toml:"device"`
		Width        int    `toml:"width"`
		Height       int    `toml:"height"`
		FPS          int    `toml:"fps"`
		SnapshotPath string `toml:"snapshot_path"`
	} `toml:"camera"`
	MQTT struct {
		Broker   string `toml:"broker"`
		Topic    string `toml:"topic"`
		ClientID string `toml:"client_id"`
	} `toml:"mqtt"`
	Sentry struct {
		DSN         string `toml:"dsn"`
		Environment string `toml:"environment"`
	} `toml:"sentry"`
}

// EncodeTOML renders settings in the config.toml layout.
func EncodeTOML(settings Settings) ([]byte, error) {
	var doc document

	doc.Wardrobe.Path = settings.Wardrobe.Path

	doc.Log.Path = settings.Log.Path
	doc.Log.Level = settings.Log.Level
	doc.Log.Mode = settings.Log.Mode

	doc.Gemini.Model = settings.Gemini.Model
	doc.Gemini.Temperature = settings.Gemini.Temperature
	doc.Gemini.TopP = settings.Gemini.TopP
	doc.Gemini.MaxOutputTokens = settings.Gemini.MaxOutputTokens
	doc.Gemini.BaseURL = settings.Gemini.BaseURL

	doc.Voice.ID = settings.Voice.ID
	doc.Voice.Model = settings.Voice.Model
	doc.Voice.OutputFormat = settings.Voice.OutputFormat
	doc.Voice.ListenTimeout = settings.Voice.ListenTimeout.String()
	doc.Voice.PhraseLimit = settings.Voice.PhraseLimit.String()
	doc.Voice.Language = settings.Voice.Language

	doc.Detector.Command = settings.Detector.Command
	doc.Detector.Model = settings.Detector.Model
	doc.Detector.Confidence = settings.Detector.Confidence
	doc.Detector.Timeout = settings.Detector.Timeout.String()
	doc.Detector.StartupTimeout = settings.Detector.StartupTimeout.String()

	doc.Camera.Device = settings.Camera.Device
	doc.Camera.Width = settings.Camera.Width
	doc.Camera.Height = settings.Camera.Height
	doc.Camera.FPS = settings.Camera.FPS
	doc.Camera.SnapshotPath = settings.Camera.SnapshotPath

	doc.MQTT.Broker = settings.MQTT.Broker
	doc.MQTT.Topic = settings.MQTT.Topic
	doc.MQTT.ClientID = settings.MQTT.ClientID

	doc.Sentry.DSN = settings.Sentry.DSN
	doc.Sentry.Environment = settings.Sentry.Environment

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return data, nil
}
