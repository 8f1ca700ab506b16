// Package elgamal implements exponential ElGamal encryption, decrypt-by-search
// and homomorphic ciphertext combination over the group defined in package
// group (§4.3).
package elgamal

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/internal/logging"
	"github.com/openballot/zkvote/scalar"
)

var log = logging.Logger("elgamal")

// CipherText is (G, H, R): G = g^r mod p, H = h^r * g^m mod p. R is the
// encryption randomness, retained only so the producer can build proofs
// over the same randomness; it MUST NOT be transmitted to a verifier (the
// wire form, see package wire, carries only G and H).
type CipherText struct {
	G scalar.ModInt
	H scalar.ModInt
	R scalar.ModInt
}

// Encrypt draws fresh randomness r from src and returns the exponential
// ElGamal encryption of message under pk.
func Encrypt(pk group.PublicKey, message scalar.ModInt, src scalar.Source) (CipherText, error) {
	r, err := scalar.Random(src, pk.Q)
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: encrypt")
	}
	return EncryptWithRandomness(pk, message, r)
}

// EncryptWithRandomness encrypts message under pk using caller-supplied
// randomness r. Exposed so proof construction code can reuse the exact
// randomness used for the ciphertext.
func EncryptWithRandomness(pk group.PublicKey, message, r scalar.ModInt) (CipherText, error) {
	g := pk.G
	h := pk.H

	bigG, err := g.Pow(r)
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: computing G")
	}
	hToR, err := h.Pow(r)
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: computing h^r")
	}
	gToM, err := g.Pow(scalar.FromBigInt(message.Value, new(big.Int)))
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: computing g^m")
	}
	bigH, err := hToR.Mul(gToM)
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: computing H")
	}

	return CipherText{G: bigG, H: bigH, R: r}, nil
}

// Decrypt recovers m by a bounded linear search: it computes T = H / G^x =
// g^m mod p, then tries i = 0, 1, 2, ... until g^i matches T, or maxPlaintext
// is exceeded. Decryption by brute-force discrete-log search is only
// acceptable because plaintexts are small tallies (§1 Non-goals); callers
// must pick maxPlaintext to bound the search (e.g. the number of voters).
func Decrypt(sk group.PrivateKey, ct CipherText, maxPlaintext int64) (scalar.ModInt, error) {
	gToX, err := ct.G.Pow(scalar.FromBigInt(sk.X.Value, new(big.Int)))
	if err != nil {
		return scalar.ModInt{}, errors.Wrap(err, "elgamal: decrypt")
	}
	target, err := ct.H.Div(gToX)
	if err != nil {
		return scalar.ModInt{}, errors.Wrap(err, "elgamal: decrypt")
	}

	g := scalar.FromBigInt(sk.G.Value, target.Modulus)
	for i := int64(0); i <= maxPlaintext; i++ {
		candidate := scalar.New(i)
		gToI, err := g.Pow(candidate)
		if err != nil {
			return scalar.ModInt{}, errors.Wrap(err, "elgamal: decrypt")
		}
		if gToI.Equal(target) {
			return scalar.New(i), nil
		}
	}
	log.Warnf("elgamal: decrypt search exhausted bound %d without a match", maxPlaintext)
	return scalar.ModInt{}, errors.Errorf("elgamal: no plaintext found in [0, %d]", maxPlaintext)
}

// Combine homomorphically adds two ciphertexts encrypted under the same
// public key: (G1,H1,r1) ⊕ (G2,H2,r2) = (G1*G2, H1*H2, r1+r2). The combined
// randomness is retained for completeness (e.g. building proofs over a
// combined ciphertext) but a verifier never observes it.
func Combine(a, b CipherText) (CipherText, error) {
	g, err := a.G.Mul(b.G)
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: combining G")
	}
	h, err := a.H.Mul(b.H)
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: combining H")
	}
	r, err := a.R.Add(b.R)
	if err != nil {
		return CipherText{}, errors.Wrap(err, "elgamal: combining randomness")
	}
	return CipherText{G: g, H: h, R: r}, nil
}
