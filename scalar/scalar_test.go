package scalar_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/zkvote/scalar"
)

func TestNormalizeReducesIntoRange(t *testing.T) {
	m := scalar.FromBigInt(big.NewInt(23), big.NewInt(11))
	assert.Equal(t, "1", m.String())
}

func TestNegationNonZeroModulus(t *testing.T) {
	cases := []struct{ value, modulus, want int64 }{
		{23, 11, 10},
		{2, 11, 9},
		{0, 11, 0},
	}
	for _, c := range cases {
		m := scalar.FromBigInt(big.NewInt(c.value), big.NewInt(c.modulus))
		got := m.Neg()
		assert.Equal(t, big.NewInt(c.want).String(), got.String(), "neg(%d mod %d)", c.value, c.modulus)
	}
}

func TestNegationZeroModulus(t *testing.T) {
	m := scalar.New(5)
	got := m.Neg()
	assert.Equal(t, "-5", got.String())
}

func TestPowWithModulus(t *testing.T) {
	base := scalar.FromBigInt(big.NewInt(2), big.NewInt(5))
	exp := scalar.New(4)
	got, err := base.Pow(exp)
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())
}

func TestPowZeroModulusClassical(t *testing.T) {
	base := scalar.New(2)
	exp := scalar.New(10)
	got, err := base.Pow(exp)
	require.NoError(t, err)
	assert.Equal(t, "1024", got.String())
}

func TestDivisionByZeroIsPreconditionViolation(t *testing.T) {
	a := scalar.FromBigInt(big.NewInt(1), big.NewInt(5))
	zero := scalar.FromBigInt(big.NewInt(0), big.NewInt(5))
	_, err := a.Div(zero)
	require.Error(t, err)
}

func TestDivZeroModulusIsTruncated(t *testing.T) {
	a := scalar.New(-7)
	b := scalar.New(2)
	got, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, "-3", got.String())
}

func TestDivNonzeroModulusIsModularInverse(t *testing.T) {
	a := scalar.FromBigInt(big.NewInt(4), big.NewInt(5))
	b := scalar.FromBigInt(big.NewInt(3), big.NewInt(5))
	got, err := a.Div(b)
	require.NoError(t, err)
	// 3^-1 mod 5 = 2, 4*2 mod 5 = 3
	assert.Equal(t, "3", got.String())
}

func TestRemReducesByOthersModulus(t *testing.T) {
	m := scalar.New(-21)
	field := scalar.FromBigInt(big.NewInt(0), big.NewInt(4))
	got := m.Rem(field)
	assert.Equal(t, "-1", got.String())
}

func TestAddMismatchedModuliIsError(t *testing.T) {
	a := scalar.FromBigInt(big.NewInt(1), big.NewInt(5))
	b := scalar.FromBigInt(big.NewInt(1), big.NewInt(7))
	_, err := a.Add(b)
	require.Error(t, err)
}

func TestAddUnboundedOperandIsCompatible(t *testing.T) {
	a := scalar.FromBigInt(big.NewInt(1), big.NewInt(5))
	b := scalar.New(2)
	got, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "3", got.String())
}

func TestEqualIgnoresModulusRepresentation(t *testing.T) {
	a := scalar.FromBigInt(big.NewInt(3), big.NewInt(5))
	b := scalar.FromBigInt(big.NewInt(8), big.NewInt(5))
	assert.True(t, a.Equal(b))
}

func TestHexRoundTrip(t *testing.T) {
	m := scalar.FromBigInt(big.NewInt(255), big.NewInt(0))
	got, err := scalar.FromHex(m.Hex(), big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestMustAddPanicsOnViolation(t *testing.T) {
	a := scalar.FromBigInt(big.NewInt(1), big.NewInt(5))
	b := scalar.FromBigInt(big.NewInt(1), big.NewInt(7))
	assert.Panics(t, func() { a.MustAdd(b) })
}
