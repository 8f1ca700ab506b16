// Package keyfile reads and writes the JSON key files exchanged with the
// orchestration layer that is out of scope for this core (§6): public keys
// as {p, q, h, g} and private keys as {p, q, g, x}, every field a
// [value, modulus] pair.
package keyfile

import (
	"encoding/json"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/wire"
)

type publicKeyFile struct {
	P wire.Scalar `json:"p"`
	Q wire.Scalar `json:"q"`
	H wire.Scalar `json:"h"`
	G wire.Scalar `json:"g"`
}

type privateKeyFile struct {
	P wire.Scalar `json:"p"`
	Q wire.Scalar `json:"q"`
	G wire.Scalar `json:"g"`
	X wire.Scalar `json:"x"`
}

// WritePublicKey serializes pk to path as pretty-printed JSON.
func WritePublicKey(path string, pk group.PublicKey) error {
	f := publicKeyFile{
		P: wire.EncodeScalar(pk.P),
		Q: wire.EncodeScalar(pk.Q),
		H: wire.EncodeScalar(pk.H),
		G: wire.EncodeScalar(pk.G),
	}
	return writeJSON(path, f)
}

// ReadPublicKey reads and decodes a public key file, failing with the
// offending source on malformed JSON or missing fields.
func ReadPublicKey(path string) (group.PublicKey, error) {
	var f publicKeyFile
	if err := readJSON(path, &f); err != nil {
		return group.PublicKey{}, err
	}

	var merr error
	p, err := wire.DecodeScalar(f.P)
	merr = appendIfErr(merr, err)
	q, err := wire.DecodeScalar(f.Q)
	merr = appendIfErr(merr, err)
	h, err := wire.DecodeScalar(f.H)
	merr = appendIfErr(merr, err)
	g, err := wire.DecodeScalar(f.G)
	merr = appendIfErr(merr, err)
	if merr != nil {
		return group.PublicKey{}, errors.Wrapf(merr, "keyfile: decoding public key %s", path)
	}

	return group.PublicKey{P: p, Q: q, H: h, G: g}, nil
}

// WritePrivateKey serializes sk to path as pretty-printed JSON. The file is
// written with mode 0o600, as are public key files.
func WritePrivateKey(path string, sk group.PrivateKey) error {
	f := privateKeyFile{
		P: wire.EncodeScalar(sk.P),
		Q: wire.EncodeScalar(sk.Q),
		G: wire.EncodeScalar(sk.G),
		X: wire.EncodeScalar(sk.X),
	}
	return writeJSON(path, f)
}

// ReadPrivateKey reads and decodes a private key file.
func ReadPrivateKey(path string) (group.PrivateKey, error) {
	var f privateKeyFile
	if err := readJSON(path, &f); err != nil {
		return group.PrivateKey{}, err
	}

	var merr error
	p, err := wire.DecodeScalar(f.P)
	merr = appendIfErr(merr, err)
	q, err := wire.DecodeScalar(f.Q)
	merr = appendIfErr(merr, err)
	g, err := wire.DecodeScalar(f.G)
	merr = appendIfErr(merr, err)
	x, err := wire.DecodeScalar(f.X)
	merr = appendIfErr(merr, err)
	if merr != nil {
		return group.PrivateKey{}, errors.Wrapf(merr, "keyfile: decoding private key %s", path)
	}

	return group.PrivateKey{P: p, Q: q, G: g, X: x}, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "keyfile: encoding %s", path)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "keyfile: writing %s", path)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "keyfile: reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "keyfile: parsing %s", path)
	}
	return nil
}

func appendIfErr(existing error, next error) error {
	if next == nil {
		return existing
	}
	return multierror.Append(existing, next)
}
