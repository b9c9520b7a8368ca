// Package prover implements the settlement pipeline's proof provider with a
// gnark Plonk circuit that binds the commitment to the public-input buffer.
package prover

import (
	"fmt"
	"io"
	"os"

	"github.com/fullkomnun/protocols/setup"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/std/math/uints"
)

// CompiledCircuit is a compiled commitment circuit with its proving and
// verifying keys, sized for one public-input buffer length.
type CompiledCircuit struct {
	Ccs      constraint.ConstraintSystem
	Pk       plonk.ProvingKey
	Vk       plonk.VerifyingKey
	Curve    ecc.ID
	InputLen int
}

// Compile compiles the commitment circuit for buffers of inputLen bytes and
// runs the setup specified by conf. The supported curves are ecc.BN254 and
// ecc.BLS12_381, the ones the on-chain verifier understands.
func Compile(inputLen int, curve ecc.ID, conf setup.Conf) (*CompiledCircuit, error) {
	if curve != ecc.BN254 && curve != ecc.BLS12_381 {
		return nil, fmt.Errorf("unsupported curve: %v", curve)
	}
	ccs, err := frontend.Compile(curve.ScalarField(), scs.NewBuilder,
		newCommitmentCircuit(inputLen))
	if err != nil {
		return nil, fmt.Errorf("error compiling circuit: %v", err)
	}
	pk, vk, err := setup.Run(ccs, curve, conf)
	if err != nil {
		return nil, fmt.Errorf("error setting up Plonk: %v", err)
	}
	return &CompiledCircuit{ccs, pk, vk, curve, inputLen}, nil
}

// Proof is a generated proof and its witness, verified with gnark before
// being handed out.
type Proof struct {
	Proof   plonk.Proof
	Witness witness.Witness
}

// Prove generates and verifies a proof that commitment is the SHA-256
// digest of publicInputs.
func (cc *CompiledCircuit) Prove(publicInputs []byte, commitment [32]byte) (
	*Proof, error) {

	if len(publicInputs) != cc.InputLen {
		return nil, fmt.Errorf("circuit compiled for %d byte buffers, got %d",
			cc.InputLen, len(publicInputs))
	}
	assignment := &CommitmentCircuit{
		PublicInputs: uints.NewU8Array(publicInputs),
	}
	for i, b := range commitment {
		assignment.Commitment[i] = uints.NewU8(b)
	}
	witness, err := frontend.NewWitness(assignment, cc.Curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("error creating witness: %v", err)
	}
	publicWitness, err := witness.Public()
	if err != nil {
		return nil, fmt.Errorf("error creating public witness: %v", err)
	}
	proof, err := plonk.Prove(cc.Ccs, cc.Pk, witness)
	if err != nil {
		return nil, fmt.Errorf("error creating Plonk proof: %v", err)
	}
	if err := plonk.Verify(proof, cc.Vk, publicWitness); err != nil {
		return nil, fmt.Errorf("error verifying Plonk proof: %v", err)
	}
	return &Proof{proof, witness}, nil
}

// Provider adapts a CompiledCircuit to the blob-level proof interface the
// settlement pipeline hands proofs around with.
type Provider struct {
	Circuit *CompiledCircuit
}

func (p Provider) Prove(publicInputs []byte, commitment [32]byte) (
	proof []byte, publicWitness []byte, err error) {

	vp, err := p.Circuit.Prove(publicInputs, commitment)
	if err != nil {
		return nil, nil, err
	}
	publicWitness, err = vp.MarshalPublicInputs()
	if err != nil {
		return nil, nil, err
	}
	return vp.MarshalProof(), publicWitness, nil
}

// ExportProofAndPublicInputs writes the proof and its public inputs to files
// as binary blobs for the on-chain verifier.
func (p *Proof) ExportProofAndPublicInputs(proofFilename string,
	publicInputsFilename string) error {

	proofFile, err := os.Create(proofFilename)
	if err != nil {
		return fmt.Errorf("error creating proof file: %v", err)
	}
	defer proofFile.Close()

	publicInputsFile, err := os.Create(publicInputsFilename)
	if err != nil {
		return fmt.Errorf("error creating public inputs file: %v", err)
	}
	defer publicInputsFile.Close()

	if err := p.WriteProof(proofFile); err != nil {
		return err
	}
	return p.WritePublicInputs(publicInputsFile)
}

// WriteProof writes the proof as a binary blob in the verifier's format.
func (p *Proof) WriteProof(w io.Writer) error {
	if _, err := w.Write(p.MarshalProof()); err != nil {
		return fmt.Errorf("error writing proof: %v", err)
	}
	return nil
}

// WritePublicInputs writes the public witness as a binary blob in the
// verifier's format.
func (p *Proof) WritePublicInputs(w io.Writer) error {
	data, err := p.MarshalPublicInputs()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing public inputs: %v", err)
	}
	return nil
}
