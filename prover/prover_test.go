package prover_test

import (
	"crypto/sha256"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"

	"github.com/fullkomnun/protocols/prover"
	"github.com/fullkomnun/protocols/setup"
)

func TestCompileRejectsUnsupportedCurve(t *testing.T) {
	_, err := prover.Compile(64, ecc.BW6_761, setup.Conf{Mode: setup.TestOnly})
	if err == nil {
		t.Error("expected error for unsupported curve")
	}
}

// TestCommitmentProofRoundTrip compiles the commitment circuit for a small
// buffer, proves a correct commitment, and checks the verifier-side blobs
// and the circuit cache. Compiling a hash circuit takes a while, so this
// does not run with -short.
func TestCommitmentProofRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping circuit compilation in short mode")
	}

	publicInputs := make([]byte, 64)
	for i := range publicInputs {
		publicInputs[i] = byte(i * 7)
	}
	commitment := sha256.Sum256(publicInputs)

	cc, err := prover.Compile(len(publicInputs), ecc.BN254,
		setup.Conf{Mode: setup.TestOnly})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	proof, err := cc.Prove(publicInputs, commitment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blob := proof.MarshalProof()
	if len(blob) == 0 || len(blob)%32 != 0 {
		t.Errorf("proof blob is %d bytes, want non-empty 32-byte aligned",
			len(blob))
	}
	witnessBlob, err := proof.MarshalPublicInputs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the buffer stays private; only the 32 commitment bytes are public,
	// one field element each
	if want := 32 * 32; len(witnessBlob) != want {
		t.Errorf("witness blob is %d bytes, want %d", len(witnessBlob), want)
	}

	if _, err := cc.Prove(publicInputs[:32], commitment); err == nil {
		t.Error("expected error for buffer of the wrong length")
	}

	var wrong [32]byte
	if _, err := cc.Prove(publicInputs, wrong); err == nil {
		t.Error("expected error for commitment that does not match the buffer")
	}

	t.Run("save and load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "commitment.circuit")
		if err := cc.Save(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		loaded, err := prover.Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loaded.Curve != cc.Curve || loaded.InputLen != cc.InputLen {
			t.Errorf("loaded circuit metadata differs: %v/%d",
				loaded.Curve, loaded.InputLen)
		}
		if _, err := loaded.Prove(publicInputs, commitment); err != nil {
			t.Errorf("loaded circuit cannot prove: %v", err)
		}
	})

	t.Run("provider", func(t *testing.T) {
		p := prover.Provider{Circuit: cc}
		proofBlob, witnessBlob, err := p.Prove(publicInputs, commitment)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(proofBlob)%32 != 0 || len(witnessBlob)%32 != 0 {
			t.Errorf("provider blobs not 32-byte aligned: %d and %d bytes",
				len(proofBlob), len(witnessBlob))
		}
	})
}
