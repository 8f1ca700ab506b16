// Package caiproof implements the UCIV-bound Cast-as-Intended proof (§4.5):
// a non-interactive proof that a ciphertext encrypts the option the prover
// chose AND that the prover knows the voter-specific pre-image bound to
// that option.
package caiproof

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openballot/zkvote/elgamal"
	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/internal/logging"
	"github.com/openballot/zkvote/scalar"
	"github.com/openballot/zkvote/transcript"
)

var log = logging.Logger("proof/caiproof")

// PreImageSet is the voter's secret pre-images (x1, ..., xn), one per
// voting option. It must never be logged or serialized outside of a
// voter-local secret store.
type PreImageSet struct {
	PreImages []scalar.ModInt
}

// ImageSet is the voter's public images (y1, ..., yn) with yi = g^xi. Image
// construction never special-cases the chosen index: an image set built for
// one choice is bit-identical to one built for any other, since the images
// depend only on the pre-images, not on which option the voter ultimately
// casts (§4.5 precondition).
type ImageSet struct {
	Images []scalar.ModInt
}

// NewImageSet maps each pre-image xi to g^xi mod the group generator's
// modulus.
func NewImageSet(generator scalar.ModInt, preImages PreImageSet) (ImageSet, error) {
	images := make([]scalar.ModInt, len(preImages.PreImages))
	var merr error
	for i, x := range preImages.PreImages {
		y, err := generator.Pow(x)
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "image %d", i))
			continue
		}
		images[i] = y
	}
	if merr != nil {
		return ImageSet{}, errors.Wrap(merr, "caiproof: building image set")
	}
	return ImageSet{Images: images}, nil
}

// Proof is the Cast-as-Intended proof: four parallel sequences and a global
// challenge h.
type Proof struct {
	S1 []scalar.ModInt
	S2 []scalar.ModInt
	H1 []scalar.ModInt
	H2 []scalar.ModInt
	H  scalar.ModInt
}

func validateLengths(nPreImages, nImages, nOptions int, chosenIdx int) error {
	var merr error
	if nPreImages != nImages {
		merr = multierror.Append(merr, errors.Errorf("pre-image count %d != image count %d", nPreImages, nImages))
	}
	if nPreImages != nOptions {
		merr = multierror.Append(merr, errors.Errorf("pre-image count %d != option count %d", nPreImages, nOptions))
	}
	if chosenIdx < 0 || chosenIdx >= nPreImages {
		merr = multierror.Append(merr, errors.Errorf("chosen index %d out of range [0,%d)", chosenIdx, nPreImages))
	}
	if merr != nil {
		return errors.Wrap(merr, "caiproof: precondition violation")
	}
	return nil
}

// New builds a Cast-as-Intended proof that ct (built with randomness r)
// encrypts options[chosenIdx], and that the prover knows
// preImages.PreImages[chosenIdx], the pre-image behind images.Images[chosenIdx].
func New(src scalar.Source, pk group.PublicKey, ct elgamal.CipherText, r scalar.ModInt, preImages PreImageSet, images ImageSet, chosenIdx int, options []scalar.ModInt) (Proof, error) {
	n := len(preImages.PreImages)
	if err := validateLengths(n, len(images.Images), len(options), chosenIdx); err != nil {
		return Proof{}, err
	}

	g := pk.G
	h := pk.H

	s1 := make([]scalar.ModInt, n)
	s2 := make([]scalar.ModInt, n)
	h1 := make([]scalar.ModInt, n)
	h2 := make([]scalar.ModInt, n)
	a := make([]scalar.ModInt, n)
	b := make([]scalar.ModInt, n)

	tr := transcript.New().Append(ct.G, ct.H)

	var merr error
	for i := 0; i < n; i++ {
		if i == chosenIdx {
			s2j, err := scalar.Random(src, pk.Q)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			h2j, err := scalar.Random(src, pk.Q)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			bj, err := scalar.Random(src, pk.Q)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			s2[i], h2[i], b[i] = s2j, h2j, bj

			c1j, err := g.Pow(bj)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			c2j, err := h.Pow(bj)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			rj, err := realBranchCommitment(g, images.Images[i], s2j, h2j)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			tr.Append(c1j, c2j, rj)
			continue
		}

		s1i, err := scalar.Random(src, pk.Q)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		h1i, err := scalar.Random(src, pk.Q)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		ai, err := scalar.Random(src, pk.Q)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		s1[i], h1[i], a[i] = s1i, h1i, ai

		c1i, c2i, err := simulatedBranchCommitment(g, h, ct, options[i], s1i, h1i)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		ri, err := g.Pow(ai)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		tr.Append(c1i, c2i, ri)
	}
	if merr != nil {
		return Proof{}, errors.Wrap(merr, "caiproof: building branches")
	}

	challenge := tr.Challenge(pk.Q.Value)

	for i := 0; i < n; i++ {
		if i == chosenIdx {
			h1j := challenge.MustSub(h2[i])
			h1[i] = h1j
			rH1j, err := r.Mul(h1j)
			if err != nil {
				return Proof{}, errors.Wrap(err, "caiproof: computing s1 for chosen branch")
			}
			s1[i] = b[i].MustAdd(rH1j)
			continue
		}
		h2i := challenge.MustSub(h1[i])
		h2[i] = h2i
		xH2i, err := preImages.PreImages[i].Mul(h2i)
		if err != nil {
			return Proof{}, errors.Wrap(err, "caiproof: computing s2 for simulated branch")
		}
		s2[i] = a[i].MustAdd(xH2i)
	}

	return Proof{S1: s1, S2: s2, H1: h1, H2: h2, H: challenge}, nil
}

// Verify checks proof against ct, pk, the voter's public image set and the
// declared option set. Rejection is a normal boolean result, never an error
// (§7).
func Verify(proof Proof, pk group.PublicKey, ct elgamal.CipherText, images ImageSet, options []scalar.ModInt) bool {
	n := len(proof.S1)
	if n != len(proof.S2) || n != len(proof.H1) || n != len(proof.H2) {
		log.Warnf("caiproof: verify: proof sequences have mismatched lengths")
		return false
	}
	if n > len(images.Images) || n > len(options) {
		log.Warnf("caiproof: verify: proof longer than image/option set")
		return false
	}

	g := pk.G
	h := pk.H

	tr := transcript.New().Append(ct.G, ct.H)

	for i := 0; i < n; i++ {
		c1i, c2i, err := simulatedBranchCommitment(g, h, ct, options[i], proof.S1[i], proof.H1[i])
		if err != nil {
			log.Warnf("caiproof: verify: reconstructing branch %d: %v", i, err)
			return false
		}
		ri, err := realBranchCommitment(g, images.Images[i], proof.S2[i], proof.H2[i])
		if err != nil {
			log.Warnf("caiproof: verify: reconstructing branch %d: %v", i, err)
			return false
		}
		tr.Append(c1i, c2i, ri)
	}

	challenge := tr.Challenge(pk.Q.Value)
	return proof.H.Equal(challenge)
}

// simulatedBranchCommitment computes (c1, c2) = (g^s1 * G^(-h1), h^s1 *
// (H/g^m)^(-h1)) — the pair shared by the non-chosen branches at
// construction and by every branch at verification.
func simulatedBranchCommitment(g, h scalar.ModInt, ct elgamal.CipherText, optionValue, s1, h1 scalar.ModInt) (c1, c2 scalar.ModInt, err error) {
	negH1 := h1.Neg()

	gPowS1, err := g.Pow(s1)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	bigGPowNegH1, err := ct.G.Pow(negH1)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	c1, err = gPowS1.Mul(bigGPowNegH1)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}

	hPowS1, err := h.Pow(s1)
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
	rhsPowNegH1, err := hOverGPowOption.Pow(negH1)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	c2, err = hPowS1.Mul(rhsPowNegH1)
	if err != nil {
		return scalar.ModInt{}, scalar.ModInt{}, err
	}
	return c1, c2, nil
}

// realBranchCommitment computes r = g^s2 * y^(-h2), the commitment bound to
// the voter's image for the chosen branch.
func realBranchCommitment(g, image, s2, h2 scalar.ModInt) (scalar.ModInt, error) {
	negH2 := h2.Neg()
	gPowS2, err := g.Pow(s2)
	if err != nil {
		return scalar.ModInt{}, err
	}
	imagePowNegH2, err := image.Pow(negH2)
	if err != nil {
		return scalar.ModInt{}, err
	}
	return gPowS2.Mul(imagePowNegH2)
}
