package codec

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fullkomnun/protocols/ring"
)

// Field widths in bytes. See doc.go for the full layout.
const (
	RootWidth    = 32
	DexIDWidth   = 2
	OrderIDWidth = 2
	AccountWidth = 3
	AmountWidth  = 12

	// LegWidth is the encoded size of one settlement record.
	LegWidth = DexIDWidth + OrderIDWidth + 3*AccountWidth + 2*AmountWidth

	// PreambleWidth covers the before and after roots.
	PreambleWidth = 2 * RootWidth
)

var ErrFieldOverflow = errors.New("value exceeds encoded field width")

// EncodedLen returns the buffer length for a ring count. The length depends
// only on the count, never on the data.
func EncodedLen(rings int) int {
	return PreambleWidth + 2*LegWidth*rings
}

// Encode packs the root transition and the settlement records into one
// public-input buffer. legs must already be in ring order, first leg before
// second. On any overflow the whole buffer is rejected.
func Encode(rootBefore, rootAfter *big.Int, legs []*ring.Settlement) ([]byte, error) {
	e := &encoder{buf: make([]byte, 0, PreambleWidth+LegWidth*len(legs))}
	if err := e.putBig("rootBefore", rootBefore, RootWidth); err != nil {
		return nil, err
	}
	if err := e.putBig("rootAfter", rootAfter, RootWidth); err != nil {
		return nil, err
	}
	for i, leg := range legs {
		if err := e.putLeg(leg); err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
	}
	return e.buf, nil
}

type encoder struct {
	buf []byte
}

func (e *encoder) putLeg(s *ring.Settlement) error {
	// Field order is dictated by the circuit; do not reorder.
	if err := e.putUint("dexID", s.DexID, DexIDWidth); err != nil {
		return err
	}
	if err := e.putUint("orderID", s.OrderID, OrderIDWidth); err != nil {
		return err
	}
	if err := e.putUint("fromSellAccount", uint64(s.FromSellAccount), AccountWidth); err != nil {
		return err
	}
	if err := e.putUint("toBuyAccount", uint64(s.ToBuyAccount), AccountWidth); err != nil {
		return err
	}
	if err := e.putBig("sellAmount", s.FillS, AmountWidth); err != nil {
		return err
	}
	if err := e.putUint("fromFeeAccount", uint64(s.FromFeeAccount), AccountWidth); err != nil {
		return err
	}
	if err := e.putBig("feeAmount", s.FillF, AmountWidth); err != nil {
		return err
	}
	// toMargin, marginPercentage, toWallet, toOperator and
	// walletSplitPercentage exist in the record but are not yet part of the
	// circuit's input layout.
	return nil
}

// putUint appends v big-endian, zero-padded to width bytes.
func (e *encoder) putUint(field string, v uint64, width int) error {
	if width < 8 && v>>(8*width) != 0 {
		return fmt.Errorf("%s %d: %w", field, v, ErrFieldOverflow)
	}
	for shift := 8 * (width - 1); shift >= 0; shift -= 8 {
		e.buf = append(e.buf, byte(v>>shift))
	}
	return nil
}

// putBig appends v big-endian, zero-padded to width bytes. nil encodes as
// zero; negative values are rejected like overflows.
func (e *encoder) putBig(field string, v *big.Int, width int) error {
	out := make([]byte, width)
	if v != nil {
		if v.Sign() < 0 || v.BitLen() > 8*width {
			return fmt.Errorf("%s %s: %w", field, v, ErrFieldOverflow)
		}
		v.FillBytes(out)
	}
	e.buf = append(e.buf, out...)
	return nil
}
