// Package transcript implements the Fiat-Shamir transcript and challenge
// derivation shared by the membership and Cast-as-Intended proofs (§4.6).
package transcript

import (
	"crypto/sha512"
	"math/big"
	"strings"

	"github.com/openballot/zkvote/scalar"
)

// Transcript accumulates the decimal display of scalars with no delimiter
// between them, exactly as the reference implementation does. Because the
// encoding is delimiter-free, every implementation feeding a transcript
// MUST append scalars in the same fixed order as every other — see the
// per-proof construction order in proof/membership and proof/caiproof.
type Transcript struct {
	b strings.Builder
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Append appends the decimal rendering of each scalar's value (never its
// modulus) to the transcript, in argument order.
func (t *Transcript) Append(values ...scalar.ModInt) *Transcript {
	for _, v := range values {
		t.b.WriteString(v.String())
	}
	return t
}

// Challenge hashes the accumulated transcript with SHA-512, parses the hex
// digest as a non-negative integer, and reduces it mod q to produce the
// Fiat-Shamir challenge scalar.
func (t *Transcript) Challenge(q *big.Int) scalar.ModInt {
	sum := sha512.Sum512([]byte(t.b.String()))
	digest := new(big.Int).SetBytes(sum[:])
	return scalar.FromBigInt(digest, q)
}

// Bytes returns the raw accumulated transcript bytes, mostly useful for
// tests asserting wire-compatibility.
func (t *Transcript) Bytes() []byte {
	return []byte(t.b.String())
}
