package annotate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
)

const (
	snapshotFileMode = 0o644
	snapshotDirMode  = 0o700
)

// SnapshotSink keeps the latest annotated frame at path. Writes go through a
// temp file and rename so viewers never read a torn image.
type SnapshotSink struct {
	path string
}

var _ ports.FrameSink = (*SnapshotSink)(nil)

func NewSnapshotSink(path string) *SnapshotSink {
	return &SnapshotSink{path: filepath.Clean(path)}
}

func (s *SnapshotSink) Path() string {
	return s.path
}

func (s *SnapshotSink) WriteFrame(ctx context.Context, frame domain.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(frame.Data) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, snapshotDirMode); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".mira-live-*.jpg.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(frame.Data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tempFile.Chmod(snapshotFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp snapshot: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	cleanup = false
	return nil
}
