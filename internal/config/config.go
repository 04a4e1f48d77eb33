package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "MIRA"
	DirName   = ".mira"
	FileName  = "config.toml"
)

type Settings struct {
	Wardrobe WardrobeSettings `mapstructure:"wardrobe"`
	Log      LogSettings      `mapstructure:"log"`
	Gemini   GeminiSettings   `mapstructure:"gemini"`
	Voice    VoiceSettings    `mapstructure:"voice"`
	Detector DetectorSettings `mapstructure:"detector"`
	Camera   CameraSettings   `mapstructure:"camera"`
	MQTT     MQTTSettings     `mapstructure:"mqtt"`
	Sentry   SentrySettings   `mapstructure:"sentry"`
}

type WardrobeSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LogSettings struct {
	Path  string `mapstructure:"path" validate:"required"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Mode  string `mapstructure:"mode" validate:"oneof=development production"`
}

type GeminiSettings struct {
	Model           string  `mapstructure:"model" validate:"required"`
	Temperature     float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopP            float32 `mapstructure:"top_p" validate:"gte=0,lte=1"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" validate:"gt=0"`
	// BaseURL overrides the Gemini API endpoint; empty uses the public one.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type VoiceSettings struct {
	ID            string        `mapstructure:"id" validate:"required"`
	Model         string        `mapstructure:"model" validate:"required"`
	OutputFormat  string        `mapstructure:"output_format" validate:"required"`
	ListenTimeout time.Duration `mapstructure:"listen_timeout" validate:"gt=0"`
	PhraseLimit   time.Duration `mapstructure:"phrase_limit" validate:"gt=0"`
	Language      string        `mapstructure:"language" validate:"required"`
}

type DetectorSettings struct {
	// Command is the worker command line. A relative script path is looked up
	// in the working directory, then next to the mira executable.
	Command string `mapstructure:"command" validate:"required"`
	Model   string `mapstructure:"model" validate:"required"`
	// Confidence only pre-filters inside the worker. It is capped at the
	// item threshold (0.5) so it never drops what would be kept.
	Confidence     float64       `mapstructure:"confidence" validate:"gte=0,lte=0.5"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	StartupTimeout time.Duration `mapstructure:"startup_timeout" validate:"gt=0"`
}

// Argv splits the configured command line on whitespace and resolves a
// relative script path.
func (d DetectorSettings) Argv() []string {
	exe, err := os.Executable()
	if err != nil {
		return strings.Fields(d.Command)
	}
	return d.argvRelativeTo(filepath.Dir(exe))
}

func (d DetectorSettings) argvRelativeTo(exeDir string) []string {
	argv := strings.Fields(d.Command)
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		if strings.HasPrefix(arg, "-") || filepath.IsAbs(arg) || filepath.Ext(arg) != ".py" {
			continue
		}
		if _, err := os.Stat(arg); err == nil {
			continue
		}

		for _, candidate := range []string{filepath.Join(exeDir, arg), filepath.Join(exeDir, filepath.Base(arg))} {
			if _, err := os.Stat(candidate); err == nil {
				argv[i] = candidate
				break
			}
		}
	}
	return argv
}

type CameraSettings struct {
	Device       string `mapstructure:"device" validate:"required"`
	Width        int    `mapstructure:"width" validate:"gt=0"`
	Height       int    `mapstructure:"height" validate:"gt=0"`
	FPS          int    `mapstructure:"fps" validate:"gt=0,lte=60"`
	SnapshotPath string `mapstructure:"snapshot_path"`
}

type MQTTSettings struct {
	Broker   string `mapstructure:"broker" validate:"omitempty,url"`
	Topic    string `mapstructure:"topic" validate:"required_with=Broker"`
	ClientID string `mapstructure:"client_id"`
}

func (m MQTTSettings) Enabled() bool {
	return strings.TrimSpace(m.Broker) != ""
}

type SentrySettings struct {
	DSN         string `mapstructure:"dsn" validate:"omitempty,url"`
	Environment string `mapstructure:"environment"`
}

// Dir returns ~/.mira.
func Dir(home string) string {
	return filepath.Join(home, DirName)
}

func FilePath(home string) string {
	return filepath.Join(Dir(home), FileName)
}

// NewViper returns a viper instance with every default registered, the config
// file location set and MIRA_* environment overrides enabled.
func NewViper(home string) *viper.Viper {
	v := viper.New()
	SetDefaults(v, home)

	v.SetConfigFile(FilePath(home))
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func SetDefaults(v *viper.Viper, home string) {
	dir := Dir(home)

	v.SetDefault("wardrobe.path", filepath.Join(dir, "mira_wardrobe.json"))

	v.SetDefault("log.path", filepath.Join(dir, "mira.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.mode", "production")

	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.top_p", 0.95)
	v.SetDefault("gemini.max_output_tokens", 1024)
	v.SetDefault("gemini.base_url", "")

	v.SetDefault("voice.id", "cgSgspJ2msm6clMCkdW9")
	v.SetDefault("voice.model", "eleven_multilingual_v2")
	v.SetDefault("voice.output_format", "mp3_44100_128")
	v.SetDefault("voice.listen_timeout", "5s")
	v.SetDefault("voice.phrase_limit", "10s")
	v.SetDefault("voice.language", "en-US")

	v.SetDefault("detector.command", "python3 scripts/yolo_worker.py")
	v.SetDefault("detector.model", "yolov8n.pt")
	v.SetDefault("detector.confidence", 0.5)
	v.SetDefault("detector.timeout", "5s")
	v.SetDefault("detector.startup_timeout", "2m")

	v.SetDefault("camera.device", "/dev/video0")
	v.SetDefault("camera.width", 640)
	v.SetDefault("camera.height", 480)
	v.SetDefault("camera.fps", 5)
	v.SetDefault("camera.snapshot_path", filepath.Join(dir, "live.jpg"))

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "mira/wardrobe/items")
	v.SetDefault("mqtt.client_id", "mira")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "local")
}

// Load reads the optional config file, applies environment overrides and
// validates the result. Paths starting with ~ are expanded against home and
// written back so adapters reading v directly see the same values.
func Load(v *viper.Viper, home string) (Settings, error) {
	if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return Settings{}, fmt.Errorf("read config file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}

	settings.Wardrobe.Path = ExpandHome(settings.Wardrobe.Path, home)
	settings.Log.Path = ExpandHome(settings.Log.Path, home)
	settings.Camera.SnapshotPath = ExpandHome(settings.Camera.SnapshotPath, home)
	v.Set("wardrobe.path", settings.Wardrobe.Path)
	v.Set("log.path", settings.Log.Path)
	v.Set("camera.snapshot_path", settings.Camera.SnapshotPath)

	if err := Validate(settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(settings Settings) error {
	if err := validate.Struct(settings); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func ExpandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}

	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist)
}
