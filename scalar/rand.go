package scalar

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// Source is the randomness capability every proof and key operation that
// needs entropy is handed, rather than reaching for a process-global RNG.
// A Source may be a thin wrapper over crypto/rand.Reader, or a seeded
// deterministic stream for reproducible tests.
type Source interface {
	// SampleUniform returns a ModInt drawn uniformly from [0, bound), with
	// Modulus set to bound. bound must be strictly positive.
	SampleUniform(bound *big.Int) (ModInt, error)
}

// CryptoSource is a Source backed by a crypto/rand.Reader-compatible
// entropy stream. The zero value uses crypto/rand.Reader.
type CryptoSource struct {
	Reader io.Reader
}

// NewCryptoSource returns a Source backed by crypto/rand.Reader.
func NewCryptoSource() CryptoSource {
	return CryptoSource{Reader: rand.Reader}
}

// SampleUniform implements Source.
func (s CryptoSource) SampleUniform(bound *big.Int) (ModInt, error) {
	if bound.Sign() <= 0 {
		return ModInt{}, errors.Errorf("scalar: upper bound must be greater than zero, got %s", bound)
	}
	reader := s.Reader
	if reader == nil {
		reader = rand.Reader
	}
	v, err := rand.Int(reader, bound)
	if err != nil {
		return ModInt{}, errors.Wrap(err, "scalar: sampling random value")
	}
	return ModInt{Value: v, Modulus: new(big.Int).Set(bound)}, nil
}

// Random samples a ModInt uniformly from [0, bound.Value) using src. The
// result carries bound.Value as its modulus, per §4.1.
func Random(src Source, bound ModInt) (ModInt, error) {
	return src.SampleUniform(bound.Value)
}

// MustRandom panics on a precondition violation (non-positive bound or
// entropy-source failure).
func MustRandom(src Source, bound ModInt) ModInt {
	r, err := Random(src, bound)
	if err != nil {
		log.Errorf("MustRandom: %v", err)
		panic(err)
	}
	return r
}
