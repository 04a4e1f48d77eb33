package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/mira/internal/adapters/secrets/file"
	passstore "github.com/bnema/mira/internal/adapters/secrets/pass"
	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
)

// Store reads from primary first and falls back on any error except context
// cancellation.
type Store struct {
	primary      ports.SecretStore
	fallback     ports.SecretStore
	primaryName  string
	fallbackName string
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback, primaryName: "primary", fallbackName: "fallback"}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	store, err := NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
	if err != nil {
		return nil, err
	}
	store.primaryName = "pass"
	store.fallbackName = "file"

	return store, nil
}

// Locate names the backend that currently answers for key, or returns "" when
// neither holds it.
func (s *Store) Locate(ctx context.Context, key string) string {
	if _, err := s.primary.Get(ctx, key); err == nil {
		return s.primaryName
	}
	if ctx.Err() != nil {
		return ""
	}
	if _, err := s.fallback.Get(ctx, key); err == nil {
		return s.fallbackName
	}
	return ""
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes the key from both backends so a credential stored by an
// earlier fallback write does not resurface. A primary that is not installed
// or never held the key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && shouldSkipFallback(err) {
		return err
	}
	if errors.Is(err, passstore.ErrUnavailable) || errors.Is(err, domain.ErrSecretNotFound) {
		err = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err == nil && fallbackErr == nil {
		return nil
	}

	return errors.Join(wrapBackendErr("primary backend delete failed", err), wrapBackendErr("fallback backend delete failed", fallbackErr))
}

func wrapBackendErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
