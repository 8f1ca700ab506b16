package ballot_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/zkvote/ballot"
	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/internal/testsource"
	"github.com/openballot/zkvote/proof/caiproof"
	"github.com/openballot/zkvote/scalar"
)

func fixedGroup(t *testing.T) group.PublicKey {
	t.Helper()
	// p=11, q=5, g=3: 3^5 mod 11 = 1, so g generates the order-q subgroup.
	params, err := group.NewParams(big.NewInt(11), big.NewInt(5), big.NewInt(3))
	require.NoError(t, err)
	sk := group.PrivateKey{P: params.P, Q: params.Q, G: params.G, X: scalar.New(3)}
	pk, err := sk.Public()
	require.NoError(t, err)
	return pk
}

func TestBuildAndVerify(t *testing.T) {
	pk := fixedGroup(t)
	src := testsource.New(30)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}
	preImages := caiproof.PreImageSet{PreImages: []scalar.ModInt{scalar.New(1), scalar.New(0)}}
	images, err := caiproof.NewImageSet(pk.G, preImages)
	require.NoError(t, err)

	b, ct, err := ballot.Build(src, pk, 1, options, preImages, images)
	require.NoError(t, err)
	assert.NotEqual(t, ct.R.String(), "")

	ok, err := ballot.Verify(b, pk, options, images)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildRejectsOutOfRangeChoice(t *testing.T) {
	pk := fixedGroup(t)
	src := testsource.New(31)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}
	preImages := caiproof.PreImageSet{PreImages: []scalar.ModInt{scalar.New(1), scalar.New(0)}}
	images, err := caiproof.NewImageSet(pk.G, preImages)
	require.NoError(t, err)

	_, _, err = ballot.Build(src, pk, 9, options, preImages, images)
	require.Error(t, err)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	pk := fixedGroup(t)
	src := testsource.New(32)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}
	preImages := caiproof.PreImageSet{PreImages: []scalar.ModInt{scalar.New(1), scalar.New(0)}}
	images, err := caiproof.NewImageSet(pk.G, preImages)
	require.NoError(t, err)

	b, _, err := ballot.Build(src, pk, 0, options, preImages, images)
	require.NoError(t, err)

	b.Membership.S[0] = b.Membership.C[0]
	ok, err := ballot.Verify(b, pk, options, images)
	require.NoError(t, err)
	assert.False(t, ok)
}
