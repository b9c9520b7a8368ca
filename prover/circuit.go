package prover

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/sha2"
	"github.com/consensys/gnark/std/math/uints"
)

// CommitmentCircuit proves knowledge of a public-input buffer whose SHA-256
// digest equals the public commitment. The buffer stays private in the
// witness; the verifier only ever sees the 32 commitment bytes it already
// bound the settlement to.
type CommitmentCircuit struct {
	PublicInputs []uints.U8
	Commitment   [32]uints.U8 `gnark:",public"`
}

func (c *CommitmentCircuit) Define(api frontend.API) error {
	h, err := sha2.New(api)
	if err != nil {
		return err
	}
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}
	h.Write(c.PublicInputs)
	digest := h.Sum()
	if len(digest) != len(c.Commitment) {
		return fmt.Errorf("unexpected digest length %d", len(digest))
	}
	for i := range c.Commitment {
		uapi.ByteAssertEq(c.Commitment[i], digest[i])
	}
	return nil
}

// newCommitmentCircuit returns a circuit shell sized for buffers of
// inputLen bytes, ready for compilation.
func newCommitmentCircuit(inputLen int) *CommitmentCircuit {
	return &CommitmentCircuit{PublicInputs: make([]uints.U8, inputLen)}
}
