/*
Package verifier encodes the submission side of proof verification.

The on-chain verify entry point takes three arguments, each a list of
byte slices:

  - the public inputs, as 32-byte field elements in circuit order
  - the proof blob, split into 32-byte chunks
  - the flattened verifying key components

The verifying key is flattened deterministically: scalar sizes and field
elements as 32-byte big-endian values, curve points uncompressed (64 or 96
bytes for G1, 128 or 192 for G2, depending on the curve), in declaration
order. Every component is a multiple of 32 bytes so the contract can index
into them uniformly.
*/
package verifier
