// Package ballot bundles a ciphertext with its membership and
// Cast-as-Intended proofs into the single unit a voter emits and a
// verifier checks as a whole. It adds no new cryptography — it is pure
// composition over elgamal, proof/membership and proof/caiproof, grounded
// in the way the distilled spec's end-to-end scenarios (2 and 5) always
// build and verify a ciphertext together with its proofs.
package ballot

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/openballot/zkvote/elgamal"
	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/proof/caiproof"
	"github.com/openballot/zkvote/proof/membership"
	"github.com/openballot/zkvote/scalar"
	"github.com/openballot/zkvote/wire"
)

// Ballot is the wire-ready bundle a voter produces: an opaque ID an
// orchestration layer can use to correlate this ballot through a pipeline
// (out of scope here, see §1/§6), the ciphertext's wire form, and both
// proofs.
type Ballot struct {
	ID         uuid.UUID            `json:"id"`
	CipherText wire.CipherText      `json:"cipher_text"`
	Membership wire.MembershipProof `json:"membership_proof"`
	Cai        wire.CaiProof        `json:"cai_proof"`
}

// Build encrypts options[chosenIdx] under pk, proves membership and
// cast-as-intended over the resulting ciphertext and returns the bundled
// ballot alongside the in-memory ciphertext (which still carries the
// encryption randomness, needed by callers that homomorphically combine
// ballots before proofs are discarded).
func Build(
	src scalar.Source,
	pk group.PublicKey,
	chosenIdx int,
	options []scalar.ModInt,
	preImages caiproof.PreImageSet,
	images caiproof.ImageSet,
) (Ballot, elgamal.CipherText, error) {
	if chosenIdx < 0 || chosenIdx >= len(options) {
		return Ballot{}, elgamal.CipherText{}, errors.Errorf("ballot: chosen index %d out of range [0,%d)", chosenIdx, len(options))
	}

	ct, err := elgamal.Encrypt(pk, options[chosenIdx], src)
	if err != nil {
		return Ballot{}, elgamal.CipherText{}, errors.Wrap(err, "ballot: encrypting choice")
	}

	mProof, err := membership.New(src, pk, chosenIdx, ct.R, ct, options)
	if err != nil {
		return Ballot{}, elgamal.CipherText{}, errors.Wrap(err, "ballot: building membership proof")
	}

	cProof, err := caiproof.New(src, pk, ct, ct.R, preImages, images, chosenIdx, options)
	if err != nil {
		return Ballot{}, elgamal.CipherText{}, errors.Wrap(err, "ballot: building cast-as-intended proof")
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return Ballot{}, elgamal.CipherText{}, errors.Wrap(err, "ballot: generating id")
	}

	return Ballot{
		ID:         id,
		CipherText: wire.EncodeCipherText(ct),
		Membership: wire.EncodeMembershipProof(mProof),
		Cai:        wire.EncodeCaiProof(cProof),
	}, ct, nil
}

// Verify decodes b's ciphertext and proofs and checks both against pk, the
// option set and the voter's image set. It returns false (not an error) on
// a rejected proof, and an error only on malformed wire data.
func Verify(b Ballot, pk group.PublicKey, options []scalar.ModInt, images caiproof.ImageSet) (bool, error) {
	ct, err := wire.DecodeCipherText(b.CipherText)
	if err != nil {
		return false, errors.Wrap(err, "ballot: decoding ciphertext")
	}
	mProof, err := wire.DecodeMembershipProof(b.Membership)
	if err != nil {
		return false, errors.Wrap(err, "ballot: decoding membership proof")
	}
	cProof, err := wire.DecodeCaiProof(b.Cai)
	if err != nil {
		return false, errors.Wrap(err, "ballot: decoding cast-as-intended proof")
	}

	if !membership.Verify(mProof, pk, ct, options) {
		return false, nil
	}
	if !caiproof.Verify(cProof, pk, ct, images, options) {
		return false, nil
	}
	return true, nil
}
