package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCredentials(t *testing.T, env map[string]string) (*Credentials, *mocks.MockSecretStore) {
	t.Helper()

	store := mocks.NewMockSecretStore(t)
	credentials := NewCredentials(store)
	credentials.getenv = func(key string) string {
		return env[key]
	}
	return credentials, store
}

func TestCredentialsResolvePrefersEnvironment(t *testing.T) {
	credentials, _ := newTestCredentials(t, map[string]string{"GEMINI_API_KEY": " env-key "})

	value, source, err := credentials.Resolve(context.Background(), domain.GeminiCredential)
	require.NoError(t, err)
	assert.Equal(t, "env-key", value)
	assert.Equal(t, domain.CredentialSourceEnv, source)
}

func TestCredentialsResolveFallsBackToStore(t *testing.T) {
	credentials, store := newTestCredentials(t, nil)
	store.EXPECT().Get(mockAnyContext(), "mira/gemini_api_key").Return("stored-key\n", nil)

	value, source, err := credentials.Resolve(context.Background(), domain.GeminiCredential)
	require.NoError(t, err)
	assert.Equal(t, "stored-key", value)
	assert.Equal(t, domain.CredentialSourceStore, source)
}

func TestCredentialsResolveMissing(t *testing.T) {
	credentials, store := newTestCredentials(t, nil)
	store.EXPECT().Get(mockAnyContext(), "mira/gemini_api_key").Return("", domain.ErrSecretNotFound)

	_, source, err := credentials.Resolve(context.Background(), domain.GeminiCredential)
	require.ErrorIs(t, err, domain.ErrCredentialMissing)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Equal(t, domain.CredentialSourceNone, source)
}

func TestCredentialsLookupOptionalMissingIsEmpty(t *testing.T) {
	credentials, store := newTestCredentials(t, nil)
	store.EXPECT().Get(mockAnyContext(), "mira/eleven_api_key").Return("", errors.New("pass unavailable"))

	value, err := credentials.Lookup(context.Background(), domain.ElevenLabsCredential)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCredentialsSetAndDelete(t *testing.T) {
	credentials, store := newTestCredentials(t, nil)
	store.EXPECT().Put(mockAnyContext(), "mira/eleven_api_key", "xi-key").Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "mira/eleven_api_key").Return(nil)

	require.NoError(t, credentials.Set(context.Background(), domain.ElevenLabsCredential, " xi-key "))
	require.NoError(t, credentials.Delete(context.Background(), domain.ElevenLabsCredential))
	require.Error(t, credentials.Set(context.Background(), domain.ElevenLabsCredential, "  "))
}

func TestCredentialsStatus(t *testing.T) {
	credentials, store := newTestCredentials(t, map[string]string{"GEMINI_API_KEY": "env-key"})
	store.EXPECT().Get(mockAnyContext(), "mira/eleven_api_key").Return("", domain.ErrSecretNotFound)

	statuses := credentials.Status(context.Background())
	require.Len(t, statuses, 2)
	assert.Equal(t, domain.CredentialSourceEnv, statuses[0].Source)
	assert.Equal(t, domain.CredentialSourceNone, statuses[1].Source)
}

type locatingStore struct {
	*mocks.MockSecretStore
	backend string
}

func (s locatingStore) Locate(context.Context, string) string {
	return s.backend
}

func TestCredentialsStatusNamesStoreBackend(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Get(mockAnyContext(), "mira/gemini_api_key").Return("stored-key", nil)
	store.EXPECT().Get(mockAnyContext(), "mira/eleven_api_key").Return("", domain.ErrSecretNotFound)

	credentials := NewCredentials(locatingStore{MockSecretStore: store, backend: "file"})
	credentials.getenv = func(string) string { return "" }

	statuses := credentials.Status(context.Background())
	require.Len(t, statuses, 2)
	assert.Equal(t, domain.CredentialSourceStore, statuses[0].Source)
	assert.Equal(t, "file", statuses[0].Backend)
	assert.Empty(t, statuses[1].Backend)
}
