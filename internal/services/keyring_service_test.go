package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func testKeyringService(t *testing.T) *KeyringService {
	t.Helper()
	keyring.MockInit()
	return &KeyringService{configDir: t.TempDir()}
}

func TestKeyringService_StoreGetDeleteRoundTrip(t *testing.T) {
	svc := testKeyringService(t)

	require.NoError(t, svc.StoreApiKey("openai", []byte("sk-test-123")))

	key, err := svc.GetApiKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", key)

	entries, err := svc.ListApiKeys()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "openai", entries[0]["provider"])

	require.NoError(t, svc.DeleteApiKey("openai"))

	_, err = svc.GetApiKey("openai")
	assert.Error(t, err)

	entries, err = svc.ListApiKeys()
	require.NoError(t, err)
	assert.Empty(t, entries, "registry forgets the provider on delete")
}

func TestKeyringService_ListSkipsProvidersWithoutAKey(t *testing.T) {
	svc := testKeyringService(t)
	require.NoError(t, svc.StoreApiKey("openai", []byte("sk-a")))
	require.NoError(t, svc.StoreApiKey("gemini", []byte("sk-b")))

	// Key removed behind the registry's back.
	require.NoError(t, keyring.Delete(serviceName, "gemini"))

	entries, err := svc.ListApiKeys()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "openai", entries[0]["provider"])
}

func TestKeyringService_Validation(t *testing.T) {
	svc := testKeyringService(t)

	assert.Error(t, svc.StoreApiKey("", []byte("sk")))
	assert.Error(t, svc.StoreApiKey("openai", nil))

	_, err := svc.GetApiKey("")
	assert.Error(t, err)
	assert.Error(t, svc.DeleteApiKey(""))
}
