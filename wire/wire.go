// Package wire implements the stable, transport-agnostic encoding for
// scalars, ciphertexts and proofs (§6): every ModInt serializes as a
// two-element [value, modulus] array of signed decimal strings.
package wire

import (
	"math/big"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openballot/zkvote/elgamal"
	"github.com/openballot/zkvote/proof/caiproof"
	"github.com/openballot/zkvote/proof/membership"
	"github.com/openballot/zkvote/scalar"
)

// Scalar is the [value, modulus] wire pair for a ModInt.
type Scalar [2]string

// EncodeScalar renders m as its wire pair.
func EncodeScalar(m scalar.ModInt) Scalar {
	return Scalar{m.Value.String(), m.Modulus.String()}
}

// DecodeScalar parses a wire pair back into a ModInt.
func DecodeScalar(s Scalar) (scalar.ModInt, error) {
	v, ok := new(big.Int).SetString(s[0], 10)
	if !ok {
		return scalar.ModInt{}, errors.Errorf("wire: invalid scalar value %q", s[0])
	}
	m, ok := new(big.Int).SetString(s[1], 10)
	if !ok {
		return scalar.ModInt{}, errors.Errorf("wire: invalid scalar modulus %q", s[1])
	}
	return scalar.FromBigInt(v, m), nil
}

func encodeScalars(ms []scalar.ModInt) []Scalar {
	out := make([]Scalar, len(ms))
	for i, m := range ms {
		out[i] = EncodeScalar(m)
	}
	return out
}

func decodeScalars(ss []Scalar) ([]scalar.ModInt, error) {
	out := make([]scalar.ModInt, len(ss))
	for i, s := range ss {
		m, err := DecodeScalar(s)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = m
	}
	return out, nil
}

// CipherText is the wire form of an elgamal.CipherText: only G and H travel
// — the encryption randomness R is producer-local and never serialized.
type CipherText struct {
	G Scalar `json:"g"`
	H Scalar `json:"h"`
}

// EncodeCipherText drops R and encodes (G, H).
func EncodeCipherText(ct elgamal.CipherText) CipherText {
	return CipherText{G: EncodeScalar(ct.G), H: EncodeScalar(ct.H)}
}

// DecodeCipherText parses a wire ciphertext. The returned CipherText carries
// a zero R — it is not valid input to proof construction, only to
// Decrypt/Combine/Verify.
func DecodeCipherText(w CipherText) (elgamal.CipherText, error) {
	g, err := DecodeScalar(w.G)
	if err != nil {
		return elgamal.CipherText{}, errors.Wrap(err, "wire: decoding ciphertext G")
	}
	h, err := DecodeScalar(w.H)
	if err != nil {
		return elgamal.CipherText{}, errors.Wrap(err, "wire: decoding ciphertext H")
	}
	return elgamal.CipherText{G: g, H: h, R: scalar.Zero()}, nil
}

// MembershipProof is the wire form of membership.Proof (§6).
type MembershipProof struct {
	S []Scalar `json:"s"`
	C []Scalar `json:"c"`
	Y []Scalar `json:"y"`
	Z []Scalar `json:"z"`
	P Scalar   `json:"p"`
	Q Scalar   `json:"q"`
}

// EncodeMembershipProof converts a membership.Proof to its wire form.
func EncodeMembershipProof(p membership.Proof) MembershipProof {
	return MembershipProof{
		S: encodeScalars(p.S),
		C: encodeScalars(p.C),
		Y: encodeScalars(p.Y),
		Z: encodeScalars(p.Z),
		P: EncodeScalar(p.P),
		Q: EncodeScalar(p.Q),
	}
}

// DecodeMembershipProof parses a wire membership proof.
func DecodeMembershipProof(w MembershipProof) (membership.Proof, error) {
	var merr error
	s, err := decodeScalars(w.S)
	merr = appendIfErr(merr, err)
	c, err := decodeScalars(w.C)
	merr = appendIfErr(merr, err)
	y, err := decodeScalars(w.Y)
	merr = appendIfErr(merr, err)
	z, err := decodeScalars(w.Z)
	merr = appendIfErr(merr, err)
	p, err := DecodeScalar(w.P)
	merr = appendIfErr(merr, err)
	q, err := DecodeScalar(w.Q)
	merr = appendIfErr(merr, err)
	if merr != nil {
		return membership.Proof{}, errors.Wrap(merr, "wire: decoding membership proof")
	}
	return membership.Proof{S: s, C: c, Y: y, Z: z, P: p, Q: q}, nil
}

// CaiProof is the wire form of caiproof.Proof (§6).
type CaiProof struct {
	S1 []Scalar `json:"s1"`
	S2 []Scalar `json:"s2"`
	H1 []Scalar `json:"h1"`
	H2 []Scalar `json:"h2"`
	H  Scalar   `json:"h"`
}

// EncodeCaiProof converts a caiproof.Proof to its wire form.
func EncodeCaiProof(p caiproof.Proof) CaiProof {
	return CaiProof{
		S1: encodeScalars(p.S1),
		S2: encodeScalars(p.S2),
		H1: encodeScalars(p.H1),
		H2: encodeScalars(p.H2),
		H:  EncodeScalar(p.H),
	}
}

// DecodeCaiProof parses a wire Cast-as-Intended proof.
func DecodeCaiProof(w CaiProof) (caiproof.Proof, error) {
	var merr error
	s1, err := decodeScalars(w.S1)
	merr = appendIfErr(merr, err)
	s2, err := decodeScalars(w.S2)
	merr = appendIfErr(merr, err)
	h1, err := decodeScalars(w.H1)
	merr = appendIfErr(merr, err)
	h2, err := decodeScalars(w.H2)
	merr = appendIfErr(merr, err)
	h, err := DecodeScalar(w.H)
	merr = appendIfErr(merr, err)
	if merr != nil {
		return caiproof.Proof{}, errors.Wrap(merr, "wire: decoding CaI proof")
	}
	return caiproof.Proof{S1: s1, S2: s2, H1: h1, H2: h2, H: h}, nil
}

// appendIfErr accumulates non-nil errors into a *multierror.Error.
func appendIfErr(existing error, next error) error {
	if next == nil {
		return existing
	}
	return multierror.Append(existing, next)
}
