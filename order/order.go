// Package order defines trade orders and their normalization into the
// fully specified form the settlement engine consumes.
//
// An order goes through two stages: a RawOrder as handed over by the test
// harness, with optional fields left at their zero value, and an Order
// produced by a Normalizer, with every field concrete and the account and
// token slots assigned. Only normalized orders enter settlement.
package order

import "math/big"

// RawOrder is a partially specified trade intent. S, B and F suffixes mark
// the sell, buy and fee sides.
type RawOrder struct {
	// Owner is empty (resolve by batch position), a decimal index into the
	// owner pool, or an account address used as is.
	Owner string `json:"owner,omitempty"`

	TokenS string `json:"tokenS"`
	TokenB string `json:"tokenB"`
	TokenF string `json:"tokenF,omitempty"`

	AmountS *big.Int `json:"amountS"`
	AmountB *big.Int `json:"amountB"`
	AmountF *big.Int `json:"amountF,omitempty"`

	ValidSince uint64 `json:"validSince,omitempty"`
	ValidUntil uint64 `json:"validUntil,omitempty"`

	DexID   uint64 `json:"dexID"`
	OrderID uint64 `json:"orderID"`
	Version uint64 `json:"version,omitempty"`
}

// Order is a normalized order. Orders are not modified after normalization.
type Order struct {
	Owner string

	TokenS string
	TokenB string
	TokenF string

	AmountS *big.Int
	AmountB *big.Int
	AmountF *big.Int

	ValidSince uint64
	ValidUntil uint64

	// Account table slots for the sell, buy and fee balances.
	AccountS uint32
	AccountB uint32
	AccountF uint32

	// Token table slots for the sell, buy and fee tokens.
	TokenIDS uint32
	TokenIDB uint32
	TokenIDF uint32

	DexID   uint64
	OrderID uint64
	Version uint64
}
