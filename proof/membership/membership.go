// Package membership implements the non-interactive 1-of-n Chaum-Pedersen
// OR-proof of ciphertext membership in a declared option set (§4.4).
package membership

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openballot/zkvote/elgamal"
	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/internal/logging"
	"github.com/openballot/zkvote/scalar"
	"github.com/openballot/zkvote/transcript"
)

var log = logging.Logger("proof/membership")

// Proof is a non-interactive proof that a ciphertext encrypts some value
// drawn from a declared option set, without revealing which one. The four
// sequences are parallel and positional: branch i corresponds to option i.
type Proof struct {
	S []scalar.ModInt
	C []scalar.ModInt
	Y []scalar.ModInt
	Z []scalar.ModInt

	P scalar.ModInt
	Q scalar.ModInt
}

// New builds a membership proof that ct encrypts options[chosenIdx] under
// pk, using r as the exact randomness ct was produced with.
//
// Preconditions: chosenIdx must index options; len(options) must be > 0.
func New(src scalar.Source, pk group.PublicKey, chosenIdx int, r scalar.ModInt, ct elgamal.CipherText, options []scalar.ModInt) (Proof, error) {
	n := len(options)
	if chosenIdx < 0 || chosenIdx >= n {
		return Proof{}, errors.Errorf("membership: chosen index %d out of range [0,%d)", chosenIdx, n)
	}

	g := pk.G
	h := pk.H

	s := make([]scalar.ModInt, n)
	c := make([]scalar.ModInt, n)
	y := make([]scalar.ModInt, n)
	z := make([]scalar.ModInt, n)

	t, err := scalar.Random(src, pk.Q)
	if err != nil {
		return Proof{}, errors.Wrap(err, "membership: sampling t")
	}

	tr := transcript.New().Append(g, h, ct.G, ct.H)

	var merr error
	for i, option := range options {
		if i == chosenIdx {
			s[i] = scalar.Zero()
			c[i] = scalar.Zero()
			yi, err := g.Pow(t)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			zi, err := h.Pow(t)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			y[i], z[i] = yi, zi
			continue
		}

		si, err := scalar.Random(src, pk.Q)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		ci, err := scalar.Random(src, pk.Q)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		s[i], c[i] = si, ci

		yi, zi, err := commitBranch(g, h, ct, option, si, ci)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		y[i], z[i] = yi, zi
	}
	if merr != nil {
		return Proof{}, errors.Wrap(merr, "membership: building simulated branches")
	}

	tr.Append(interleave(y, z)...)
	challenge := tr.Challenge(pk.Q.Value)

	cSum := scalar.FromBigIntZero(pk.Q.Value)
	for i := range options {
		if i == chosenIdx {
			continue
		}
		cSum = cSum.MustAdd(c[i])
	}
	cj := challenge.MustSub(cSum)
	rTimesCj, err := cj.Mul(r)
	if err != nil {
		return Proof{}, errors.Wrap(err, "membership: computing s for chosen branch")
	}
	sj := rTimesCj.MustAdd(t)

	s[chosenIdx] = sj
	c[chosenIdx] = cj

	return Proof{S: s, C: c, Y: y, Z: z, P: pk.P, Q: pk.Q}, nil
}

// Verify checks proof against ct, pk and the declared option set. It never
// returns an error for a rejected proof — rejection is a normal boolean
// result (§7).
func Verify(proof Proof, pk group.PublicKey, ct elgamal.CipherText, options []scalar.ModInt) bool {
	if len(options) < len(proof.C) || len(options) < len(proof.S) {
		log.Warnf("membership: verify: option set shorter than proof (options=%d, branches=%d)", len(options), len(proof.C))
		return false
	}
	if len(proof.C) != len(proof.S) || len(proof.C) != len(proof.Y) || len(proof.C) != len(proof.Z) {
		log.Warnf("membership: verify: proof sequences have mismatched lengths")
		return false
	}

	g := pk.G
	h := pk.H

	tr := transcript.New().Append(g, h, ct.G, ct.H)
	cSum := scalar.FromBigIntZero(pk.Q.Value)

	for i := range proof.C {
		yi, zi, err := commitBranch(g, h, ct, options[i], proof.S[i], proof.C[i])
		if err != nil {
			log.Warnf("membership: verify: reconstructing branch %d: %v", i, err)
			return false
		}
		tr.Append(yi, zi)
		cSum = cSum.MustAdd(proof.C[i])
	}

	challenge := tr.Challenge(proof.Q.Value)
	return cSum.Equal(challenge)
}

// commitBranch computes y = g^s * G^(-c) and z = h^s * (H/g^m)^(-c), the
// commitment pair recomputed both when simulating a branch during proof
// construction and when verifying every branch.
func commitBranch(g, h scalar.ModInt, ct elgamal.CipherText, optionValue, s, c scalar.ModInt) (y, z scalar.ModInt, err error) {
	negC := c.Neg()

	gPowS, err := g.Pow(s)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	bigGPowNegC, err := ct.G.Pow(negC)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	y, err = gPowS.Mul(bigGPowNegC)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}

	hPowS, err := h.Pow(s)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	gPowOption, err := g.Pow(optionValue)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	hOverGPowOption, err := ct.H.Div(gPowOption)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	rhsPowNegC, err := hOverGPowOption.Pow(negC)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	z, err = hPowS.Mul(rhsPowNegC)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	return y, z, nil
}

func interleave(a, b []scalar.ModInt) []scalar.ModInt {
	out := make([]scalar.ModInt, 0, len(a)+len(b))
	for i := range a {
		out = append(out, a[i], b[i])
	}
	return out
}
