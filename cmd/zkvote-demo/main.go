// Command zkvote-demo exercises the core library end-to-end: it builds a
// tiny hard-coded group, encrypts a choice, proves membership and
// cast-as-intended, and verifies the result. It is a demonstration of the
// library surface, not a production CLI or election orchestrator — key
// files, transport and orchestration remain out of scope (§1, §6).
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/openballot/zkvote/ballot"
	"github.com/openballot/zkvote/elgamal"
	"github.com/openballot/zkvote/group"
	"github.com/openballot/zkvote/proof/caiproof"
	"github.com/openballot/zkvote/scalar"
	"github.com/openballot/zkvote/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "zkvote-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	params, err := group.NewParams(big.NewInt(5), big.NewInt(2), big.NewInt(2))
	if err != nil {
		return err
	}

	src := scalar.NewCryptoSource()
	sk, pk, err := group.GenerateKeyPair(params, src)
	if err != nil {
		return err
	}

	options := []scalar.ModInt{scalar.New(0), scalar.New(1)}

	preImages := caiproof.PreImageSet{PreImages: []scalar.ModInt{
		scalar.MustRandom(src, pk.Q),
		scalar.MustRandom(src, pk.Q),
	}}
	images, err := caiproof.NewImageSet(pk.G, preImages)
	if err != nil {
		return err
	}

	const chosen = 1
	b, _, err := ballot.Build(src, pk, chosen, options, preImages, images)
	if err != nil {
		return err
	}

	ok, err := ballot.Verify(b, pk, options, images)
	if err != nil {
		return err
	}

	fmt.Printf("ballot %s verified: %v\n", b.ID, ok)

	ct, err := wire.DecodeCipherText(b.CipherText)
	if err != nil {
		return err
	}
	choice, err := elgamal.Decrypt(sk, ct, int64(len(options)))
	if err != nil {
		return err
	}
	fmt.Printf("tally authority recovers choice: %s\n", choice)
	return nil
}
