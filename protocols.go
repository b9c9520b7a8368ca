// Package protocols settles batches of matched trade rings and produces the
// canonical public-input encoding and commitment an off-chain prover and an
// on-chain verifier must agree on.
//
// The pipeline is strictly sequential per batch: raw orders are normalized,
// paired into rings, settled into transfer records, encoded into one
// fixed-width buffer and committed to with a single hash. Any failure aborts
// the batch before anything is exported; a partially encoded buffer would
// commit to the wrong settlement, which is worse than failing loudly.
package protocols

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/fullkomnun/protocols/codec"
	"github.com/fullkomnun/protocols/order"
	"github.com/fullkomnun/protocols/ring"
)

// Batch is an ordered sequence of rings plus the trading-history root
// transition computed by the proof provider.
type Batch struct {
	Rings      []*ring.Ring
	RootBefore *big.Int
	RootAfter  *big.Int
}

// SettledBatch is the result of settling a batch: the per-leg records, the
// exact public-input bytes, and the commitment binding a proof to them.
type SettledBatch struct {
	Legs         []*ring.Settlement
	PublicInputs []byte
	Commitment   codec.Commitment
}

// ProofProvider generates a proof bound to the given public inputs. The
// returned public witness is in the provider's own verifier format; the
// pipeline never depends on how the provider works internally.
type ProofProvider interface {
	Prove(publicInputs []byte, commitment [32]byte) (
		proof []byte, publicWitness []byte, err error)
}

// BuildBatch normalizes the raw orders and pairs them into rings in batch
// order. now is the current ledger time used for validity window defaults.
func BuildBatch(n *order.Normalizer, raws []order.RawOrder, now uint64,
	rootBefore, rootAfter *big.Int) (*Batch, error) {

	if len(raws)%2 != 0 {
		return nil, fmt.Errorf("%w: batch of %d orders does not pair into rings",
			ring.ErrMalformedRing, len(raws))
	}
	orders := make([]*order.Order, len(raws))
	for i, raw := range raws {
		o, err := n.Normalize(raw, i, now)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		orders[i] = o
	}
	rings := make([]*ring.Ring, 0, len(orders)/2)
	for i := 0; i < len(orders); i += 2 {
		rings = append(rings, &ring.Ring{OrderA: orders[i], OrderB: orders[i+1]})
	}
	return &Batch{Rings: rings, RootBefore: rootBefore, RootAfter: rootAfter}, nil
}

// Settle runs the settlement pipeline over the batch: every ring becomes two
// records, the records are encoded and the commitment is computed.
func Settle(b *Batch) (*SettledBatch, error) {
	legs := make([]*ring.Settlement, 0, 2*len(b.Rings))
	for i, r := range b.Rings {
		rec, err := r.Settle()
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		legs = append(legs, rec[0], rec[1])
	}
	publicInputs, err := codec.Encode(b.RootBefore, b.RootAfter, legs)
	if err != nil {
		return nil, fmt.Errorf("error encoding public inputs: %w", err)
	}
	return &SettledBatch{
		Legs:         legs,
		PublicInputs: publicInputs,
		Commitment:   codec.Commit(publicInputs),
	}, nil
}

// WritePublicInputs writes the public-input buffer for the external prover.
func (sb *SettledBatch) WritePublicInputs(w io.Writer) error {
	if _, err := w.Write(sb.PublicInputs); err != nil {
		return fmt.Errorf("error writing public inputs: %v", err)
	}
	return nil
}

// ExportPublicInputs writes the public-input buffer and the commitment hex
// to files for the external prover to pick up and cross-check.
func (sb *SettledBatch) ExportPublicInputs(publicInputsFilename string,
	commitmentFilename string) error {

	publicInputsFile, err := os.Create(publicInputsFilename)
	if err != nil {
		return fmt.Errorf("error creating public inputs file: %v", err)
	}
	defer publicInputsFile.Close()

	if err := sb.WritePublicInputs(publicInputsFile); err != nil {
		return err
	}
	err = os.WriteFile(commitmentFilename, []byte(sb.Commitment.Hex()+"\n"), 0644)
	if err != nil {
		return fmt.Errorf("error writing commitment file: %v", err)
	}
	return nil
}
