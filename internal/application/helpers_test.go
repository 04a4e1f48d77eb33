package application

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/mira/internal/adapters/repo/jsonfile"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTempWardrobe(t *testing.T, clock *fakeClock) (*WardrobeService, string) {
	t.Helper()

	return newWardrobeAt(t, filepath.Join(t.TempDir(), "mira_wardrobe.json"), clock)
}

func newTempWardrobeAt(t *testing.T, path string) (*WardrobeService, string) {
	t.Helper()

	return newWardrobeAt(t, path, nil)
}

func newWardrobeAt(t *testing.T, path string, clock *fakeClock) (*WardrobeService, string) {
	t.Helper()

	config := viper.New()
	config.Set(jsonfile.WardrobePathKey, path)

	repo, err := jsonfile.NewRepository(config)
	require.NoError(t, err)

	if clock == nil {
		return NewWardrobeService(repo, nil, nil), path
	}
	return NewWardrobeService(repo, clock, nil), path
}

type recordingSpeaker struct {
	mu    sync.Mutex
	texts []string
	waits []bool
}

func (s *recordingSpeaker) Speak(_ context.Context, text string, waitForCompletion bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	s.waits = append(s.waits, waitForCompletion)
}

func (s *recordingSpeaker) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Capture(_ context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}
