// Package group holds the named cyclic group (p, q, g) that the rest of
// zkvote operates over, plus the ElGamal key material derived from it.
// Group-parameter generation is out of scope (§1, §9): p, q and g are
// supplied by the caller, typically read from an election configuration
// the core does not concern itself with.
package group

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openballot/zkvote/scalar"
)

// Params is a prime-order cyclic group: p is the group modulus, q the
// subgroup order (q | p-1), and g a generator of the order-q subgroup of
// Z_p*.
type Params struct {
	P scalar.ModInt
	Q scalar.ModInt
	G scalar.ModInt
}

// NewParams validates and builds Params from raw big.Ints. It does not
// verify primality or that g actually generates the order-q subgroup —
// that validation belongs to whatever trusted setup produced p, q, g.
func NewParams(p, q, g *big.Int) (Params, error) {
	if p.Sign() <= 0 || q.Sign() <= 0 {
		return Params{}, errors.New("group: p and q must be positive")
	}
	zero := new(big.Int)
	return Params{
		P: scalar.FromBigInt(p, zero),
		Q: scalar.FromBigInt(q, zero),
		G: scalar.FromBigInt(g, p),
	}, nil
}

// PublicKey is (p, q, h, g) with h = g^x mod p.
type PublicKey struct {
	P scalar.ModInt
	Q scalar.ModInt
	H scalar.ModInt
	G scalar.ModInt
}

// PrivateKey is (p, q, g, x) with x in [0, q).
type PrivateKey struct {
	P scalar.ModInt
	Q scalar.ModInt
	G scalar.ModInt
	X scalar.ModInt
}

// Public derives the PublicKey matching a PrivateKey.
func (sk PrivateKey) Public() (PublicKey, error) {
	gModP := scalar.FromBigInt(sk.G.Value, sk.P.Value)
	h, err := gModP.Pow(scalar.FromBigInt(sk.X.Value, new(big.Int)))
	if err != nil {
		return PublicKey{}, errors.Wrap(err, "group: deriving public key")
	}
	return PublicKey{P: sk.P, Q: sk.Q, H: h, G: gModP}, nil
}

// GenerateKeyPair draws x uniformly from [0, q) using src and returns the
// resulting (PrivateKey, PublicKey) pair for params.
func GenerateKeyPair(params Params, src scalar.Source) (PrivateKey, PublicKey, error) {
	x, err := scalar.Random(src, params.Q)
	if err != nil {
		return PrivateKey{}, PublicKey{}, errors.Wrap(err, "group: generating private key")
	}
	sk := PrivateKey{P: params.P, Q: params.Q, G: params.G, X: scalar.FromBigInt(x.Value, new(big.Int))}
	pk, err := sk.Public()
	if err != nil {
		return PrivateKey{}, PublicKey{}, err
	}
	return sk, pk, nil
}
