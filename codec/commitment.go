package codec

import (
	"crypto/sha256"
	"encoding/hex"
)

// Commitment is the digest binding a proof to its exact public inputs.
// Identical buffers always produce identical commitments.
type Commitment [sha256.Size]byte

// Commit hashes the public-input buffer, once and whole.
func Commit(publicInputs []byte) Commitment {
	return Commitment(sha256.Sum256(publicInputs))
}

func (c Commitment) Bytes() []byte {
	return c[:]
}

// Hex renders the commitment as lowercase hexadecimal.
func (c Commitment) Hex() string {
	return hex.EncodeToString(c[:])
}
