package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
)

// ErrUnavailable means pass is not installed or its store is not initialised.
// Callers treat it as "use another backend".
var ErrUnavailable = errors.New("pass command unavailable")

var errMultilineKey = errors.New("api key must be a single line")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps API keys in the pass password manager. Only the first line of an
// entry is the key; later lines are free-form notes and are ignored.
type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: %w", key, errMultilineKey)
	}

	_, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", key)
	if err != nil {
		return classify("put", key, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", key)
	if err != nil {
		return "", classify("get", key, err, stderr)
	}

	value := strings.TrimSpace(FirstLine(stdout))
	if value == "" {
		return "", fmt.Errorf("pass entry %q has an empty first line: %w", key, domain.ErrSecretNotFound)
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", key)
	if err != nil {
		return classify("delete", key, err, stderr)
	}

	return nil
}

// FirstLine returns entry up to the first line break.
func FirstLine(entry string) string {
	if i := strings.IndexAny(entry, "\r\n"); i >= 0 {
		return entry[:i]
	}
	return entry
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func classify(op string, key string, err error, stderr string) error {
	lowered := strings.ToLower(stderr)

	switch {
	case errors.Is(err, ErrUnavailable):
		return fmt.Errorf("pass %s %q: %w", op, key, ErrUnavailable)
	case strings.Contains(lowered, "not in the password store"), strings.Contains(lowered, "entry not found"):
		return fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	case strings.Contains(lowered, "pass init"), strings.Contains(lowered, "no public key"):
		return fmt.Errorf("pass %s %q: %w: %s", op, key, ErrUnavailable, stderr)
	case stderr == "":
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	default:
		return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	}
}
