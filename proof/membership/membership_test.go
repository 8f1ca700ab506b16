package membership_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/zkvote/elgamal"
	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/internal/testsource"
	"github.com/openballot/zkvote/proof/membership"
	"github.com/openballot/zkvote/scalar"
)

func fixedGroup(t *testing.T) (group.PrivateKey, group.PublicKey) {
	t.Helper()
	params, err := group.NewParams(big.NewInt(5), big.NewInt(2), big.NewInt(2))
	require.NoError(t, err)
	sk := group.PrivateKey{P: params.P, Q: params.Q, G: params.G, X: scalar.New(5)}
	pk, err := sk.Public()
	require.NoError(t, err)
	return sk, pk
}

func TestMembershipProofAccepts(t *testing.T) {
	_, pk := fixedGroup(t)
	src := testsource.New(1)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}

	ct, err := elgamal.Encrypt(pk, options[1], src)
	require.NoError(t, err)

	proof, err := membership.New(src, pk, 1, ct.R, ct, options)
	require.NoError(t, err)

	assert.True(t, membership.Verify(proof, pk, ct, options))
}

func TestMembershipProofRejectsOnTamperedCiphertext(t *testing.T) {
	_, pk := fixedGroup(t)
	src := testsource.New(2)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}

	ct, err := elgamal.Encrypt(pk, options[1], src)
	require.NoError(t, err)

	proof, err := membership.New(src, pk, 1, ct.R, ct, options)
	require.NoError(t, err)

	other, err := elgamal.Encrypt(pk, options[1], src)
	require.NoError(t, err)

	assert.False(t, membership.Verify(proof, pk, other, options))
}

func TestMembershipProofRejectsOnOptionMismatch(t *testing.T) {
	_, pk := fixedGroup(t)
	src := testsource.New(3)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}

	ct, err := elgamal.Encrypt(pk, options[0], src)
	require.NoError(t, err)

	proof, err := membership.New(src, pk, 0, ct.R, ct, options)
	require.NoError(t, err)

	wrongOptions := []scalar.ModInt{scalar.New(1), scalar.New(0)}
	assert.False(t, membership.Verify(proof, pk, ct, wrongOptions))
}

func TestMembershipProofRejectsOutOfRangeChosenIndex(t *testing.T) {
	_, pk := fixedGroup(t)
	src := testsource.New(4)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}

	ct, err := elgamal.Encrypt(pk, options[0], src)
	require.NoError(t, err)

	_, err = membership.New(src, pk, 2, ct.R, ct, options)
	require.Error(t, err)
}

func TestMembershipVerifyRejectsMismatchedProofLengths(t *testing.T) {
	_, pk := fixedGroup(t)
	src := testsource.New(5)
	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}

	ct, err := elgamal.Encrypt(pk, options[0], src)
	require.NoError(t, err)

	proof, err := membership.New(src, pk, 0, ct.R, ct, options)
	require.NoError(t, err)

	proof.S = proof.S[:1]
	assert.False(t, membership.Verify(proof, pk, ct, options))
}
