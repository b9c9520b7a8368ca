// Package ring settles pairs of crossing orders into per-leg transfer
// records.
package ring

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fullkomnun/protocols/order"
)

// FillDivisor is the fixed-fraction fill factor: each leg settles its stated
// amounts divided by this constant, truncating. It stands in for real
// order-book matching in this test scenario.
const FillDivisor = 100

var ErrMalformedRing = errors.New("malformed ring")

// Ring is a pair of orders meant to cross: A sells what B buys and vice
// versa. Rings always have exactly two legs.
type Ring struct {
	OrderA *order.Order
	OrderB *order.Order
}

// Settlement is the routing result of settling one leg: which account slots
// the sold amount and the fee leave, where the sold amount goes, and the
// amounts themselves.
type Settlement struct {
	DexID   uint64
	OrderID uint64

	FromSellAccount uint32
	ToBuyAccount    uint32
	FillS           *big.Int

	FromFeeAccount uint32
	FillF          *big.Int

	// FillB is the amount this leg's buy account receives through the
	// counterparty's sell transfer. It is not encoded on the wire.
	FillB *big.Int

	// Reserved by the record format, not computed here.
	ToMargin              uint32
	MarginPercentage      uint8
	ToWallet              uint32
	ToOperator            uint32
	WalletSplitPercentage uint8
}

// Validate checks the ring has exactly two legs whose sell and buy tokens
// cross-match.
func (r *Ring) Validate() error {
	if r.OrderA == nil || r.OrderB == nil {
		return fmt.Errorf("%w: a ring needs exactly two orders", ErrMalformedRing)
	}
	if r.OrderA.TokenS != r.OrderB.TokenB || r.OrderA.TokenB != r.OrderB.TokenS {
		return fmt.Errorf("%w: sell/buy tokens do not cross-match", ErrMalformedRing)
	}
	return nil
}

// Settle converts the ring into its two settlement records, first leg then
// second leg. The record order fixes the byte layout downstream, so it must
// not change.
func (r *Ring) Settle() ([2]*Settlement, error) {
	if err := r.Validate(); err != nil {
		return [2]*Settlement{}, err
	}
	return [2]*Settlement{
		settleLeg(r.OrderA, r.OrderB),
		settleLeg(r.OrderB, r.OrderA),
	}, nil
}

// settleLeg routes o's fills: the sold amount leaves o's sell account for
// the counterparty's buy account, the fee leaves o's fee account.
func settleLeg(o, counter *order.Order) *Settlement {
	return &Settlement{
		DexID:           o.DexID,
		OrderID:         o.OrderID,
		FromSellAccount: o.AccountS,
		ToBuyAccount:    counter.AccountB,
		FillS:           fill(o.AmountS),
		FromFeeAccount:  o.AccountF,
		FillF:           fill(o.AmountF),
		FillB:           fill(o.AmountB),
	}
}

func fill(amount *big.Int) *big.Int {
	return new(big.Int).Quo(amount, big.NewInt(FillDivisor))
}
