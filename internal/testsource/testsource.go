// Package testsource provides a deterministic scalar.Source for tests, so
// proof construction is reproducible without touching crypto/rand.
package testsource

import (
	"math/big"
	"math/rand"

	"github.com/openballot/zkvote/scalar"
)

// Fixed is a scalar.Source backed by a seeded math/rand stream. It is not
// cryptographically secure and must only be used in tests.
type Fixed struct {
	r *rand.Rand
}

// New returns a Fixed source seeded with seed.
func New(seed int64) *Fixed {
	return &Fixed{r: rand.New(rand.NewSource(seed))}
}

// SampleUniform implements scalar.Source.
func (f *Fixed) SampleUniform(bound *big.Int) (scalar.ModInt, error) {
	if bound.Sign() <= 0 {
		return scalar.ModInt{}, errNonPositiveBound(bound)
	}
	v := new(big.Int).Rand(f.r, bound)
	return scalar.FromBigInt(v, bound), nil
}

func errNonPositiveBound(bound *big.Int) error {
	return &nonPositiveBoundError{bound: bound}
}

type nonPositiveBoundError struct {
	bound *big.Int
}

func (e *nonPositiveBoundError) Error() string {
	return "testsource: bound must be positive, got " + e.bound.String()
}
