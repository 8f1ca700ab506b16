package scalar_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/zkvote/scalar"
)

func TestCryptoSourceRejectsNonPositiveBound(t *testing.T) {
	src := scalar.NewCryptoSource()
	_, err := src.SampleUniform(big.NewInt(0))
	require.Error(t, err)
}

func TestCryptoSourceSamplesInRange(t *testing.T) {
	src := scalar.NewCryptoSource()
	bound := big.NewInt(1000)
	for i := 0; i < 20; i++ {
		v, err := src.SampleUniform(bound)
		require.NoError(t, err)
		assert.True(t, v.Value.Sign() >= 0)
		assert.True(t, v.Value.Cmp(bound) < 0)
	}
}

func TestMustRandomPanicsOnNonPositiveBound(t *testing.T) {
	src := scalar.NewCryptoSource()
	bound := scalar.New(0)
	assert.Panics(t, func() { scalar.MustRandom(src, bound) })
}
