package group_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/internal/testsource"
	"github.com/openballot/zkvote/scalar"
)

func TestNewParamsRejectsNonPositive(t *testing.T) {
	_, err := group.NewParams(big.NewInt(0), big.NewInt(2), big.NewInt(2))
	require.Error(t, err)
}

func TestGenerateKeyPairDerivesConsistentPublicKey(t *testing.T) {
	params, err := group.NewParams(big.NewInt(5), big.NewInt(2), big.NewInt(2))
	require.NoError(t, err)

	src := testsource.New(1)
	sk, pk, err := group.GenerateKeyPair(params, src)
	require.NoError(t, err)

	derived, err := sk.Public()
	require.NoError(t, err)
	assert.True(t, pk.H.Equal(derived.H))
	assert.True(t, pk.G.Equal(derived.G))
}

func TestPrivateKeyPublicMatchesFixedScenario(t *testing.T) {
	// p=5, q=2, g=2, x=5 -> h = g^x mod p = 2^5 mod 5 = 2.
	params, err := group.NewParams(big.NewInt(5), big.NewInt(2), big.NewInt(2))
	require.NoError(t, err)
	sk := group.PrivateKey{P: params.P, Q: params.Q, G: params.G, X: scalar.New(5)}
	pk, err := sk.Public()
	require.NoError(t, err)
	assert.Equal(t, "2", pk.H.String())
}
