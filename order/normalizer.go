package order

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Validity window margins applied when the harness leaves the window open,
// in ledger time units.
const (
	ValidSinceMargin = 1000
	ValidUntilMargin = 2500
)

var (
	ErrInvalidOwnerIndex  = errors.New("owner index out of pool bounds")
	ErrUnknownTokenSymbol = errors.New("unknown token symbol")
)

// Normalizer resolves raw orders against a fixture account pool and a token
// registry. The reference time is passed into Normalize by the caller, so
// normalization stays a pure function of its inputs.
type Normalizer struct {
	// Owners is the account pool raw owner references resolve against.
	Owners []string

	// Registry maps token symbols to on-ledger token identifiers.
	Registry map[string]string

	// FeeToken is the protocol fee token, used when an order names none.
	FeeToken string
}

// Normalize fills in defaults and slot assignments for the order at the given
// zero-based batch position. now is the current ledger time.
//
// Orders without an explicit validUntil only receive a default expiry at odd
// positions. The asymmetry is deliberate: the expiry fixtures rely on
// even-positioned orders staying open-ended.
func (n *Normalizer) Normalize(raw RawOrder, index int, now uint64) (*Order, error) {
	owner, err := n.resolveOwner(raw.Owner, index)
	if err != nil {
		return nil, err
	}
	tokenS, err := n.resolveToken(raw.TokenS)
	if err != nil {
		return nil, err
	}
	tokenB, err := n.resolveToken(raw.TokenB)
	if err != nil {
		return nil, err
	}
	tokenF := n.FeeToken
	if raw.TokenF != "" {
		if tokenF, err = n.resolveToken(raw.TokenF); err != nil {
			return nil, err
		}
	}

	validSince := raw.ValidSince
	if validSince == 0 {
		if now > ValidSinceMargin {
			validSince = now - ValidSinceMargin
		}
	}
	validUntil := raw.ValidUntil
	if validUntil == 0 && index%2 == 1 {
		validUntil = now + ValidUntilMargin
	}

	slots := slotsByLeg[LegForIndex(index)]
	return &Order{
		Owner:      owner,
		TokenS:     tokenS,
		TokenB:     tokenB,
		TokenF:     tokenF,
		AmountS:    amountOrZero(raw.AmountS),
		AmountB:    amountOrZero(raw.AmountB),
		AmountF:    amountOrZero(raw.AmountF),
		ValidSince: validSince,
		ValidUntil: validUntil,
		AccountS:   slots.accountS,
		AccountB:   slots.accountB,
		AccountF:   slots.accountF,
		TokenIDS:   slots.tokenS,
		TokenIDB:   slots.tokenB,
		TokenIDF:   slots.tokenF,
		DexID:      raw.DexID,
		OrderID:    raw.OrderID,
		Version:    raw.Version,
	}, nil
}

func (n *Normalizer) resolveOwner(owner string, index int) (string, error) {
	if len(n.Owners) == 0 {
		return "", errors.New("normalizer has an empty owner pool")
	}
	if owner == "" {
		return n.Owners[index%len(n.Owners)], nil
	}
	if i, err := strconv.Atoi(owner); err == nil {
		if i < 0 || i >= len(n.Owners) {
			return "", fmt.Errorf("owner %q: %w", owner, ErrInvalidOwnerIndex)
		}
		return n.Owners[i], nil
	}
	return owner, nil
}

func (n *Normalizer) resolveToken(token string) (string, error) {
	if id, ok := n.Registry[token]; ok {
		return id, nil
	}
	if isTokenID(token) {
		return token, nil
	}
	return "", fmt.Errorf("token %q: %w", token, ErrUnknownTokenSymbol)
}

// isTokenID reports whether s already names a token on the ledger rather
// than a registry symbol.
func isTokenID(s string) bool {
	return strings.HasPrefix(s, "0x") || len(s) >= 32
}

// amountOrZero copies v so the normalized order does not alias the raw
// order's value; nil defaults to zero.
func amountOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
