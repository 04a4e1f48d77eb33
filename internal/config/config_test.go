package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()

	settings, err := Load(NewViper(home), home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".mira", "mira_wardrobe.json"), settings.Wardrobe.Path)
	assert.Equal(t, filepath.Join(home, ".mira", "mira.log"), settings.Log.Path)
	assert.Equal(t, "gemini-2.5-flash", settings.Gemini.Model)
	assert.Equal(t, "cgSgspJ2msm6clMCkdW9", settings.Voice.ID)
	assert.Equal(t, "eleven_multilingual_v2", settings.Voice.Model)
	assert.Equal(t, "mp3_44100_128", settings.Voice.OutputFormat)
	assert.Equal(t, 5*time.Second, settings.Voice.ListenTimeout)
	assert.Equal(t, 10*time.Second, settings.Voice.PhraseLimit)
	assert.Equal(t, []string{"python3", "scripts/yolo_worker.py"}, settings.Detector.Argv())
	assert.InDelta(t, 0.5, settings.Detector.Confidence, 1e-9)
	assert.Equal(t, 5*time.Second, settings.Detector.Timeout)
	assert.Equal(t, 2*time.Minute, settings.Detector.StartupTimeout)
	assert.Equal(t, 640, settings.Camera.Width)
	assert.Equal(t, 480, settings.Camera.Height)
	assert.False(t, settings.MQTT.Enabled())
	assert.Empty(t, settings.Sentry.DSN)
}

func TestLoadReadsConfigFileAndExpandsHome(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(Dir(home), 0o700))

	content := `
[wardrobe]
path = "~/closet.json"

[voice]
listen_timeout = "3s"

[mqtt]
broker = "tcp://localhost:1883"
`
	require.NoError(t, os.WriteFile(FilePath(home), []byte(content), 0o600))

	v := NewViper(home)
	settings, err := Load(v, home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "closet.json"), settings.Wardrobe.Path)
	assert.Equal(t, filepath.Join(home, "closet.json"), v.GetString("wardrobe.path"))
	assert.Equal(t, 3*time.Second, settings.Voice.ListenTimeout)
	assert.True(t, settings.MQTT.Enabled())
	assert.Equal(t, "mira/wardrobe/items", settings.MQTT.Topic)
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MIRA_GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("MIRA_CAMERA_FPS", "10")

	settings, err := Load(NewViper(home), home)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", settings.Gemini.Model)
	assert.Equal(t, 10, settings.Camera.FPS)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	home := t.TempDir()

	v := NewViper(home)
	v.Set("detector.confidence", 1.5)
	v.Set("log.level", "chatty")

	_, err := Load(v, home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Settings.Detector.Confidence")
	assert.Contains(t, err.Error(), "Settings.Log.Level")
}

func TestDetectorConfidenceCappedAtItemThreshold(t *testing.T) {
	home := t.TempDir()

	v := NewViper(home)
	v.Set("detector.confidence", domain.ConfidenceThreshold)
	_, err := Load(v, home)
	require.NoError(t, err)

	v = NewViper(home)
	v.Set("detector.confidence", 0.6)
	_, err = Load(v, home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Settings.Detector.Confidence (lte)")
}

func TestDetectorArgvResolvesScriptNextToExecutable(t *testing.T) {
	exeDir := t.TempDir()
	script := filepath.Join(exeDir, "scripts", "yolo_worker.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, []byte("print()\n"), 0o644))
	flat := filepath.Join(exeDir, "flat_worker.py")
	require.NoError(t, os.WriteFile(flat, []byte("print()\n"), 0o644))

	tests := []struct {
		name    string
		command string
		want    []string
	}{
		{name: "scripts dir", command: "python3 scripts/yolo_worker.py", want: []string{"python3", script}},
		{name: "flat install", command: "python3 -u lib/flat_worker.py --verbose", want: []string{"python3", "-u", flat, "--verbose"}},
		{name: "absolute untouched", command: "python3 /opt/mira/worker.py", want: []string{"python3", "/opt/mira/worker.py"}},
		{name: "missing kept relative", command: "python3 other/missing.py", want: []string{"python3", "other/missing.py"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DetectorSettings{Command: tt.command}
			assert.Equal(t, tt.want, d.argvRelativeTo(exeDir))
		})
	}
}

func TestLoadMalformedConfigFileReturnsError(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(Dir(home), 0o700))
	require.NoError(t, os.WriteFile(FilePath(home), []byte("[wardrobe\npath="), 0o600))

	_, err := Load(NewViper(home), home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestEncodeTOMLRoundTripsThroughLoad(t *testing.T) {
	home := t.TempDir()

	settings, err := Load(NewViper(home), home)
	require.NoError(t, err)

	data, err := EncodeTOML(settings)
	require.NoError(t, err)
	assert.Regexp(t, `listen_timeout = ['"]5s['"]`, string(data))

	require.NoError(t, os.MkdirAll(Dir(home), 0o700))
	require.NoError(t, os.WriteFile(FilePath(home), data, 0o600))

	reloaded, err := Load(NewViper(home), home)
	require.NoError(t, err)
	assert.Equal(t, settings, reloaded)
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tilde only", in: "~", want: "/home/mira"},
		{name: "tilde prefix", in: "~/a/b.json", want: "/home/mira/a/b.json"},
		{name: "absolute", in: "/tmp/x", want: "/tmp/x"},
		{name: "relative", in: "x/y", want: "x/y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExpandHome(tt.in, "/home/mira"))
		})
	}
}
