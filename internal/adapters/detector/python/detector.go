package python

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

const (
	defaultTimeout        = 5 * time.Second
	defaultStartupTimeout = 2 * time.Minute
	writeTimeout   = 2 * time.Second
	stopTimeout    = 2 * time.Second
)

var (
	ErrWorkerTimeout = errors.New("detector worker timed out")
	ErrClosed        = errors.New("detector is closed")
)

type Config struct {
	// Argv is the worker command line; --model and --confidence are appended.
	Argv  []string
	Model string
	// Confidence is passed to the worker as a pre-filter. Detections below
	// domain.ConfidenceThreshold are still dropped by the annotator.
	Confidence float64
	// Timeout bounds one frame's inference.
	Timeout time.Duration
	// StartupTimeout bounds the wait for the worker's ready message, which
	// covers model loading and a first-run weights download.
	StartupTimeout time.Duration
	Env            []string
	Logger         *observability.Logger
}

// Detector runs object detection in a long-lived worker subprocess. Calls are
// serialized; a hung or crashed worker is killed and respawned on the next
// call.
type Detector struct {
	cfg Config
	log *observability.Logger

	mu     sync.Mutex
	proc   *workerProcess
	closed bool
}

var _ ports.ObjectDetector = (*Detector)(nil)

type workerProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	cancel context.CancelFunc
	exited chan struct{}
	wg     sync.WaitGroup
}

func NewDetector(cfg Config) (*Detector, error) {
	if len(cfg.Argv) == 0 {
		return nil, errors.New("detector command is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = defaultStartupTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NewNop()
	}

	return &Detector{cfg: cfg, log: cfg.Logger.With("component", "detector")}, nil
}

func (d *Detector) Detect(ctx context.Context, frame domain.Frame) ([]domain.Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}

	if d.proc == nil {
		proc, err := d.spawn(ctx)
		if err != nil {
			return nil, err
		}
		d.proc = proc
	}

	req := request{
		FrameData: frame.Data,
		Width:     frame.Width,
		Height:    frame.Height,
		Meta: map[string]any{
			"seq":       frame.Seq,
			"trace_id":  frame.TraceID,
			"timestamp": frame.CapturedAt.Format(time.RFC3339Nano),
		},
	}

	if err := d.send(ctx, req); err != nil {
		d.resetLocked("write failed", false)
		return nil, err
	}

	resp, err := d.receive(ctx)
	if err != nil {
		d.resetLocked("read failed", false)
		return nil, err
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("detector worker: %s", resp.Error)
	}

	d.log.Debug("frame detected", "seq", frame.Seq, "trace_id", frame.TraceID, "detections", len(resp.Detections), "timing", resp.Timing)

	return toDetections(resp.Detections), nil
}

func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	d.resetLocked("closed", true)

	return nil
}

// spawn starts a worker and waits for its ready message. A worker that exits
// or stays silent past StartupTimeout is killed.
func (d *Detector) spawn(ctx context.Context) (*workerProcess, error) {
	args := append([]string{}, d.cfg.Argv[1:]...)
	if d.cfg.Model != "" {
		args = append(args, "--model", d.cfg.Model)
	}
	args = append(args, "--confidence", fmt.Sprintf("%.2f", d.cfg.Confidence))

	procCtx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(procCtx, d.cfg.Argv[0], args...)
	if len(d.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), d.cfg.Env...)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start detector worker: %w", err)
	}

	d.log.Info("detector worker spawned", "pid", cmd.Process.Pid, "command", strings.Join(d.cfg.Argv, " "))

	proc := &workerProcess{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		cancel: cancel,
		exited: make(chan struct{}),
	}

	proc.wg.Add(2)
	go d.logStderr(proc, stderr)
	go d.waitProcess(procCtx, proc)

	started := time.Now()
	var hello ready
	if err := d.readWithin(ctx, proc, d.cfg.StartupTimeout, &hello); err != nil {
		d.stop(proc, "startup failed", false)
		return nil, fmt.Errorf("wait for detector worker startup: %w", err)
	}
	if !hello.Ready {
		d.stop(proc, "bad handshake", false)
		return nil, errors.New("detector worker sent no ready message")
	}

	d.log.Info("detector worker ready", "pid", cmd.Process.Pid, "model", hello.Model, "startup", time.Since(started))

	return proc, nil
}

func (d *Detector) send(ctx context.Context, req request) error {
	stdin := d.proc.stdin
	writeErr := make(chan error, 1)
	go func() {
		writeErr <- writeMessage(stdin, req)
	}()

	timer := time.NewTimer(writeTimeout)
	defer timer.Stop()

	select {
	case err := <-writeErr:
		if err != nil {
			return fmt.Errorf("write frame to detector worker: %w", err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("write frame to detector worker: %w", ErrWorkerTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Detector) receive(ctx context.Context) (response, error) {
	var resp response
	if err := d.readWithin(ctx, d.proc, d.cfg.Timeout, &resp); err != nil {
		return response{}, fmt.Errorf("read detector worker response: %w", err)
	}
	return resp, nil
}

// readWithin reads one message from proc into v, giving up after timeout.
// An abandoned read ends when the worker is stopped.
func (d *Detector) readWithin(ctx context.Context, proc *workerProcess, timeout time.Duration, v any) error {
	stdout := proc.stdout
	done := make(chan error, 1)
	go func() {
		done <- readMessage(stdout, v)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return ErrWorkerTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resetLocked stops the current worker. The caller holds d.mu.
func (d *Detector) resetLocked(reason string, graceful bool) {
	proc := d.proc
	if proc == nil {
		return
	}
	d.proc = nil

	d.stop(proc, reason, graceful)
}

// stop ends proc. A graceful stop closes stdin and gives the worker
// stopTimeout to exit before killing it.
func (d *Detector) stop(proc *workerProcess, reason string, graceful bool) {
	d.log.Info("stopping detector worker", "reason", reason, "pid", proc.cmd.Process.Pid)

	_ = proc.stdin.Close()

	if graceful {
		select {
		case <-proc.exited:
		case <-time.After(stopTimeout):
			d.log.Warn("detector worker stop timeout, killing process", "pid", proc.cmd.Process.Pid)
		}
	}

	proc.cancel()
	proc.wg.Wait()
}

func (d *Detector) logStderr(proc *workerProcess, stderr io.Reader) {
	defer proc.wg.Done()

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case containsAny(line, "[ERROR]", "[CRITICAL]"):
			d.log.Error("detector worker error", "log", line)
		case containsAny(line, "[WARNING]", "[WARN]"):
			d.log.Warn("detector worker warning", "log", line)
		default:
			d.log.Debug("detector worker log", "log", line)
		}
	}
}

func (d *Detector) waitProcess(procCtx context.Context, proc *workerProcess) {
	defer proc.wg.Done()
	defer close(proc.exited)

	err := proc.cmd.Wait()
	switch {
	case err == nil:
		d.log.Info("detector worker exited cleanly", "pid", proc.cmd.Process.Pid)
	case procCtx.Err() != nil:
		d.log.Debug("detector worker exited (shutdown)", "pid", proc.cmd.Process.Pid)
	default:
		d.log.Error("detector worker exited unexpectedly", "pid", proc.cmd.Process.Pid, "error", err)
	}
}

func toDetections(raw []detection) []domain.Detection {
	detections := make([]domain.Detection, 0, len(raw))
	for _, item := range raw {
		var box domain.BBox
		if len(item.BBox) == 4 {
			box = domain.BBox{X1: item.BBox[0], Y1: item.BBox[1], X2: item.BBox[2], Y2: item.BBox[3]}
		}

		detections = append(detections, domain.Detection{
			ClassID:      item.ClassID,
			Confidence:   item.Confidence,
			BBox:         box,
			BackendLabel: item.Label,
		})
	}
	return detections
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
