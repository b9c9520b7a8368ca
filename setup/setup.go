// Package setup runs the Plonk setup for compiled circuits, either from a
// trusted powers-of-tau ceremony file or as a test-only setup not suitable
// for production.
package setup

import (
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	kzg_bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	kzg_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/gnark-crypto/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	gp "github.com/mdehoog/gnark-ptau"
)

// Mode selects between a trusted setup and a test-only one.
type Mode int

const (
	Trusted Mode = iota
	TestOnly
)

// Conf specifies which setup to run. Trusted setups read the ceremony
// parameters from PtauPath, a snarkjs powers-of-tau file such as the ones
// produced by the perpetual powers-of-tau ceremony.
type Conf struct {
	Mode     Mode
	PtauPath string
}

// Run sets up a Plonk system for the compiled circuit, as specified by conf.
func Run(ccs constraint.ConstraintSystem, curve ecc.ID, conf Conf) (
	plonk.ProvingKey, plonk.VerifyingKey, error) {

	numGates := uint64(ccs.GetNbConstraints() + ccs.GetNbPublicVariables())
	numGates = ecc.NextPowerOfTwo(numGates)

	var srs kzg.SRS
	var err error

	switch curve {
	case ecc.BN254:
		if conf.Mode == Trusted {
			srs, err = trustedSetupBN254(conf.PtauPath, numGates+5)
		} else {
			srs, err = kzg_bn254.NewSRS(numGates+5, big.NewInt(-1))
		}
	case ecc.BLS12_381:
		if conf.Mode == Trusted {
			// powers-of-tau ceremony files are BN254 only
			return nil, nil, fmt.Errorf("trusted setup not available for BLS12-381")
		}
		srs, err = kzg_bls12381.NewSRS(numGates+5, big.NewInt(-1))
	default:
		return nil, nil, fmt.Errorf("unsupported curve: %v", curve)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error creating SRS: %v", err)
	}
	return plonk.Setup(ccs, srs)
}

// trustedSetupBN254 loads ceremony parameters from a powers-of-tau file and
// trims them to the requested size.
func trustedSetupBN254(path string, size uint64) (*kzg_bn254.SRS, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %v", path, err)
	}
	defer file.Close()

	srs, err := gp.ToSRS(file)
	if err != nil {
		return nil, fmt.Errorf("error converting %s to SRS: %v", path, err)
	}
	if uint64(len(srs.Pk.G1)) < size {
		return nil, fmt.Errorf("you required %d G1 parameters, but only %d are "+
			"available", size, len(srs.Pk.G1))
	}
	srs.Pk.G1 = srs.Pk.G1[:size]
	return srs, nil
}
