package prover

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
)

// compiledCircuitBytes is the gob image of a compiled circuit.
type compiledCircuitBytes struct {
	Ccs      []byte
	Pk       []byte
	Vk       []byte
	Curve    ecc.ID
	InputLen int
}

// Save serializes the compiled circuit to file so later runs can skip
// compilation and setup.
func (cc *CompiledCircuit) Save(filepath string) error {
	var ccsB, pkB, vkB bytes.Buffer
	if _, err := cc.Ccs.WriteTo(&ccsB); err != nil {
		return fmt.Errorf("error serializing constraint system: %v", err)
	}
	if _, err := cc.Pk.WriteTo(&pkB); err != nil {
		return fmt.Errorf("error serializing proving key: %v", err)
	}
	if _, err := cc.Vk.WriteTo(&vkB); err != nil {
		return fmt.Errorf("error serializing verifying key: %v", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(compiledCircuitBytes{
		Ccs:      ccsB.Bytes(),
		Pk:       pkB.Bytes(),
		Vk:       vkB.Bytes(),
		Curve:    cc.Curve,
		InputLen: cc.InputLen,
	})
	if err != nil {
		return fmt.Errorf("error encoding compiled circuit: %v", err)
	}
	if err := os.WriteFile(filepath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing compiled circuit to file: %v", err)
	}
	return nil
}

// Load deserializes a compiled circuit from file.
func Load(filepath string) (*CompiledCircuit, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading compiled circuit file: %v", err)
	}

	var c compiledCircuitBytes
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decoding compiled circuit: %v", err)
	}

	cc := &CompiledCircuit{
		Ccs:      plonk.NewCS(c.Curve),
		Pk:       plonk.NewProvingKey(c.Curve),
		Vk:       plonk.NewVerifyingKey(c.Curve),
		Curve:    c.Curve,
		InputLen: c.InputLen,
	}
	if _, err := cc.Ccs.ReadFrom(bytes.NewReader(c.Ccs)); err != nil {
		return nil, fmt.Errorf("error reading constraint system data: %v", err)
	}
	if _, err := cc.Pk.ReadFrom(bytes.NewReader(c.Pk)); err != nil {
		return nil, fmt.Errorf("error reading proving key data: %v", err)
	}
	if _, err := cc.Vk.ReadFrom(bytes.NewReader(c.Vk)); err != nil {
		return nil, fmt.Errorf("error reading verifying key data: %v", err)
	}
	return cc, nil
}
