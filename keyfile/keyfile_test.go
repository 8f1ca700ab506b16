package keyfile_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/keyfile"
	"github.com/openballot/zkvote/scalar"
)

func fixedKeyPair(t *testing.T) (group.PrivateKey, group.PublicKey) {
	t.Helper()
	params, err := group.NewParams(big.NewInt(5), big.NewInt(2), big.NewInt(2))
	require.NoError(t, err)
	sk := group.PrivateKey{P: params.P, Q: params.Q, G: params.G, X: scalar.New(5)}
	pk, err := sk.Public()
	require.NoError(t, err)
	return sk, pk
}

func TestPublicKeyFileRoundTrip(t *testing.T) {
	_, pk := fixedKeyPair(t)
	path := filepath.Join(t.TempDir(), "public.json")

	require.NoError(t, keyfile.WritePublicKey(path, pk))
	got, err := keyfile.ReadPublicKey(path)
	require.NoError(t, err)

	assert.True(t, pk.P.Equal(got.P))
	assert.True(t, pk.Q.Equal(got.Q))
	assert.True(t, pk.H.Equal(got.H))
	assert.True(t, pk.G.Equal(got.G))
}

func TestPrivateKeyFileRoundTrip(t *testing.T) {
	sk, _ := fixedKeyPair(t)
	path := filepath.Join(t.TempDir(), "private.json")

	require.NoError(t, keyfile.WritePrivateKey(path, sk))
	got, err := keyfile.ReadPrivateKey(path)
	require.NoError(t, err)

	assert.True(t, sk.P.Equal(got.P))
	assert.True(t, sk.Q.Equal(got.Q))
	assert.True(t, sk.G.Equal(got.G))
	assert.True(t, sk.X.Equal(got.X))
}

func TestReadPublicKeyMissingFile(t *testing.T) {
	_, err := keyfile.ReadPublicKey(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestReadPrivateKeyMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err := keyfile.ReadPrivateKey(path)
	require.Error(t, err)
}
