package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports"
)

type CredentialStatus struct {
	Credential domain.Credential
	Source     domain.CredentialSource
	// Backend names the secret backend for store-sourced credentials when the
	// store can tell.
	Backend string
}

// secretLocator is implemented by secret stores that chain several backends.
type secretLocator interface {
	Locate(ctx context.Context, key string) string
}

// Credentials resolves API keys from the environment first and the secret
// store second.
type Credentials struct {
	store  ports.SecretStore
	getenv func(string) string
}

func NewCredentials(store ports.SecretStore) *Credentials {
	return &Credentials{store: store, getenv: os.Getenv}
}

func (c *Credentials) Resolve(ctx context.Context, credential domain.Credential) (string, domain.CredentialSource, error) {
	if value := strings.TrimSpace(c.getenv(credential.EnvVar)); value != "" {
		return value, domain.CredentialSourceEnv, nil
	}

	if c.store == nil {
		return "", domain.CredentialSourceNone, fmt.Errorf("%s: %w", credential.EnvVar, domain.ErrCredentialMissing)
	}

	value, err := c.store.Get(ctx, credential.SecretKey)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", domain.CredentialSourceNone, ctxErr
		}
		return "", domain.CredentialSourceNone, fmt.Errorf("%s: %w: %w", credential.EnvVar, domain.ErrCredentialMissing, err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.CredentialSourceNone, fmt.Errorf("%s: %w", credential.EnvVar, domain.ErrCredentialMissing)
	}

	return value, domain.CredentialSourceStore, nil
}

// Lookup is Resolve for optional credentials: a missing value is reported as
// an empty string without error.
func (c *Credentials) Lookup(ctx context.Context, credential domain.Credential) (string, error) {
	value, _, err := c.Resolve(ctx, credential)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialMissing) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (c *Credentials) Set(ctx context.Context, credential domain.Credential, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("credential value is empty")
	}

	if err := c.store.Put(ctx, credential.SecretKey, value); err != nil {
		return fmt.Errorf("store %s credential: %w", credential.Name, err)
	}
	return nil
}

func (c *Credentials) Delete(ctx context.Context, credential domain.Credential) error {
	if err := c.store.Delete(ctx, credential.SecretKey); err != nil {
		return fmt.Errorf("delete %s credential: %w", credential.Name, err)
	}
	return nil
}

func (c *Credentials) Status(ctx context.Context) []CredentialStatus {
	statuses := make([]CredentialStatus, 0, len(domain.Credentials))
	locator, _ := c.store.(secretLocator)
	for _, credential := range domain.Credentials {
		_, source, _ := c.Resolve(ctx, credential)
		status := CredentialStatus{Credential: credential, Source: source}
		if source == domain.CredentialSourceStore && locator != nil {
			status.Backend = locator.Locate(ctx, credential.SecretKey)
		}
		statuses = append(statuses, status)
	}
	return statuses
}
