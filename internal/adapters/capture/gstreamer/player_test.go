package gstreamer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaybinDescription(t *testing.T) {
	assert.Equal(t, `playbin uri="file:///tmp/mira-speech-1.mp3"`, PlaybinDescription("/tmp/mira-speech-1.mp3"))
	assert.Equal(t, `playbin uri="file:///tmp/a%20b.mp3"`, PlaybinDescription("/tmp/a b.mp3"))
}

func TestPlayEmptyAudioIsNoop(t *testing.T) {
	player := NewPlayer(PlayerConfig{TempDir: t.TempDir()})

	require.NoError(t, player.Play(context.Background(), nil, true))
}

func TestPlayWaitsForSlotWithContext(t *testing.T) {
	player := NewPlayer(PlayerConfig{TempDir: t.TempDir()})
	player.slot <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := player.Play(ctx, []byte("mp3"), true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayInBackgroundReturnsWhileAnotherClipPlays(t *testing.T) {
	player := NewPlayer(PlayerConfig{TempDir: t.TempDir()})
	player.slot <- struct{}{}

	returned := make(chan error, 1)
	go func() {
		returned <- player.Play(context.Background(), []byte("mp3"), false)
	}()

	select {
	case err := <-returned:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("background Play blocked on the busy player")
	}

	closed := make(chan struct{})
	go func() {
		_ = player.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not release the queued clip")
	}

	entries, err := os.ReadDir(player.cfg.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlayAfterCloseRejectsBackgroundClip(t *testing.T) {
	player := NewPlayer(PlayerConfig{TempDir: t.TempDir()})
	require.NoError(t, player.Close())

	err := player.Play(context.Background(), []byte("mp3"), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteTempStoresAudio(t *testing.T) {
	dir := t.TempDir()
	player := NewPlayer(PlayerConfig{TempDir: dir})

	path, err := player.writeTemp([]byte("ID3"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3"), data)
}
