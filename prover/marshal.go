package prover

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	fr_bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	plonk_bls12381 "github.com/consensys/gnark/backend/plonk/bls12-381"
	plonk_bn254 "github.com/consensys/gnark/backend/plonk/bn254"
)

// MarshalProof marshals the proof to the binary blob the on-chain verifier
// takes.
func (p *Proof) MarshalProof() []byte {
	switch proof := p.Proof.(type) {
	case *plonk_bn254.Proof:
		return proof.MarshalSolidity()
	case *plonk_bls12381.Proof:
		return marshalBls12381Proof(proof)
	default:
		panic("unrecognized proof type")
	}
}

// MarshalPublicInputs packs the public witness the way the verifier reads
// it: one field-modulus-sized big-endian value per public variable, in
// circuit order. gnark's binary header (three uint32 counts) is stripped.
func (p *Proof) MarshalPublicInputs() ([]byte, error) {
	public, err := p.Witness.Public()
	if err != nil {
		return nil, fmt.Errorf("error extracting public witness: %v", err)
	}
	data, err := public.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("error marshaling public witness: %v", err)
	}
	return data[12:], nil
}

// marshalBls12381Proof lays the proof out the way the verifier expects:
// commitments as 96-byte uncompressed points, evaluations as 32-byte field
// elements.
func marshalBls12381Proof(proof *plonk_bls12381.Proof) []byte {
	res := make([]byte, 0, 1024)
	g1 := func(p bls12381.G1Affine) {
		b := p.RawBytes()
		res = append(res, b[:]...)
	}
	fr := func(x fr_bls12381.Element) {
		b := x.Bytes()
		res = append(res, b[:]...)
	}

	// l, r, o wire commitments
	for i := 0; i < 3; i++ {
		g1(proof.LRO[i])
	}
	// quotient polynomial commitments h1, h2, h3
	for i := 0; i < 3; i++ {
		g1(proof.H[i])
	}
	// l, r, o, s1, s2 evaluations at zeta
	for i := 2; i < 7; i++ {
		fr(proof.BatchedProof.ClaimedValues[i])
	}
	// grand product commitment and its evaluation at zeta*omega
	g1(proof.Z)
	fr(proof.ZShiftedOpening.ClaimedValue)
	// quotient and linearization polynomial evaluations at zeta
	fr(proof.BatchedProof.ClaimedValues[0])
	fr(proof.BatchedProof.ClaimedValues[1])
	// batched opening proofs at zeta and zeta*omega
	g1(proof.BatchedProof.H)
	g1(proof.ZShiftedOpening.H)
	// custom gate commitments, if any
	for i := range proof.Bsb22Commitments {
		fr(proof.BatchedProof.ClaimedValues[7+i])
	}
	for _, c := range proof.Bsb22Commitments {
		g1(c)
	}
	return res
}
