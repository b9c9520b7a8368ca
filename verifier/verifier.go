package verifier

import (
	"encoding/binary"
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	fr_bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	fr_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/plonk"
	plonk_bls12381 "github.com/consensys/gnark/backend/plonk/bls12-381"
	plonk_bn254 "github.com/consensys/gnark/backend/plonk/bn254"
)

var errNotAligned = errors.New("blob is not 32-byte aligned")

// SubmissionArgs encodes the (public inputs, proof, verifying key) triple as
// the method arguments the on-chain verify entry point takes. Proof and
// public inputs must be 32-byte aligned, as the marshaling side produces
// them.
func SubmissionArgs(publicInputs []byte, proof []byte, vk plonk.VerifyingKey) (
	[]interface{}, error) {

	publicInputsAbi, err := chunk32(publicInputs)
	if err != nil {
		return nil, fmt.Errorf("public inputs: %w", err)
	}
	proofAbi, err := chunk32(proof)
	if err != nil {
		return nil, fmt.Errorf("proof: %w", err)
	}
	vkAbi, err := FlattenVerifyingKey(vk)
	if err != nil {
		return nil, fmt.Errorf("verifying key: %w", err)
	}
	return []interface{}{publicInputsAbi, proofAbi, vkAbi}, nil
}

// FlattenVerifyingKey flattens a Plonk verifying key into the components the
// verifier contract stores. See doc.go for the layout.
func FlattenVerifyingKey(vk plonk.VerifyingKey) ([][]byte, error) {
	switch vk := vk.(type) {
	case *plonk_bn254.VerifyingKey:
		if len(vk.CommitmentConstraintIndexes) > 0 {
			return nil, errors.New("custom gates are not supported at the moment")
		}
		return flattenBn254(vk), nil
	case *plonk_bls12381.VerifyingKey:
		if len(vk.CommitmentConstraintIndexes) > 0 {
			return nil, errors.New("custom gates are not supported at the moment")
		}
		return flattenBls12381(vk), nil
	default:
		return nil, errors.New("unsupported curve")
	}
}

func flattenBn254(vk *plonk_bn254.VerifyingKey) [][]byte {
	var comps [][]byte
	u64 := func(v uint64) {
		b := make([]byte, 32)
		binary.BigEndian.PutUint64(b[24:], v)
		comps = append(comps, b)
	}
	fr := func(x fr_bn254.Element) {
		b := x.Bytes()
		comps = append(comps, b[:])
	}
	g1 := func(p bn254.G1Affine) {
		b := p.RawBytes()
		comps = append(comps, b[:])
	}
	g2 := func(p bn254.G2Affine) {
		b := p.RawBytes()
		comps = append(comps, b[:])
	}

	u64(vk.Size)
	fr(vk.SizeInv)
	fr(vk.Generator)
	u64(vk.NbPublicVariables)
	fr(vk.CosetShift)
	for i := range vk.S {
		g1(vk.S[i])
	}
	g1(vk.Ql)
	g1(vk.Qr)
	g1(vk.Qm)
	g1(vk.Qo)
	g1(vk.Qk)
	g1(vk.Kzg.G1)
	for i := range vk.Kzg.G2 {
		g2(vk.Kzg.G2[i])
	}
	return comps
}

func flattenBls12381(vk *plonk_bls12381.VerifyingKey) [][]byte {
	var comps [][]byte
	u64 := func(v uint64) {
		b := make([]byte, 32)
		binary.BigEndian.PutUint64(b[24:], v)
		comps = append(comps, b)
	}
	fr := func(x fr_bls12381.Element) {
		b := x.Bytes()
		comps = append(comps, b[:])
	}
	g1 := func(p bls12381.G1Affine) {
		b := p.RawBytes()
		comps = append(comps, b[:])
	}
	g2 := func(p bls12381.G2Affine) {
		b := p.RawBytes()
		comps = append(comps, b[:])
	}

	u64(vk.Size)
	fr(vk.SizeInv)
	fr(vk.Generator)
	u64(vk.NbPublicVariables)
	fr(vk.CosetShift)
	for i := range vk.S {
		g1(vk.S[i])
	}
	g1(vk.Ql)
	g1(vk.Qr)
	g1(vk.Qm)
	g1(vk.Qo)
	g1(vk.Qk)
	g1(vk.Kzg.G1)
	for i := range vk.Kzg.G2 {
		g2(vk.Kzg.G2[i])
	}
	return comps
}

func chunk32(data []byte) ([][]byte, error) {
	if len(data)%32 != 0 {
		return nil, errNotAligned
	}
	chunks := make([][]byte, 0, len(data)/32)
	for i := 0; i < len(data); i += 32 {
		chunks = append(chunks, data[i:i+32])
	}
	return chunks, nil
}
