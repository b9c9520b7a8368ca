// package testutils contains test fixtures and helper functions
package testutils

import (
	"fmt"
	"math/big"
	"os"

	"github.com/fullkomnun/protocols/order"
)

// Fixture token identifiers, shaped like on-ledger token addresses.
const (
	TokenX = "0x51e059cb22f6041c02dd2b1b72a5548efa34bd64"
	TokenY = "0x8b3a93d1e54018c20b4b11e53fdc63bd97a1c782"
	TokenZ = "0xef68e7c694f40c8202821edf525de3782458639f"
)

// OwnerPool is a deterministic fixture account pool orders resolve against.
var OwnerPool = []string{
	"0xfc3b863b0a3e8fcbb2d9a347f13f661ce3bb7b27",
	"0xb1b7f2c7135a3d17a16a9b5e647e0afb8bcbbf50",
	"0x6d4ee35d70ad6331000e370f079ad7df52e75005",
	"0x4bad3053d574cd54513babe21db3f09bea1d387d",
}

// NewNormalizer returns a normalizer wired to the fixture pool and registry,
// with TokenZ as the protocol fee token.
func NewNormalizer() *order.Normalizer {
	return &order.Normalizer{
		Owners: OwnerPool,
		Registry: map[string]string{
			"TKX": TokenX,
			"TKY": TokenY,
			"TKZ": TokenZ,
		},
		FeeToken: TokenZ,
	}
}

// SampleRawOrders returns the matched pair from the reference scenario: A
// sells 1000 X for 2000 Y paying a 10 Z fee, B sells 2000 Y for 1000 X
// paying a 5 Z fee.
func SampleRawOrders(dexID uint64, firstOrderID uint64) []order.RawOrder {
	return []order.RawOrder{
		{
			TokenS:  "TKX",
			TokenB:  "TKY",
			TokenF:  "TKZ",
			AmountS: big.NewInt(1000),
			AmountB: big.NewInt(2000),
			AmountF: big.NewInt(10),
			DexID:   dexID,
			OrderID: firstOrderID,
		},
		{
			TokenS:  "TKY",
			TokenB:  "TKX",
			TokenF:  "TKZ",
			AmountS: big.NewInt(2000),
			AmountB: big.NewInt(1000),
			AmountF: big.NewInt(5),
			DexID:   dexID,
			OrderID: firstOrderID + 1,
		},
	}
}

func CreateDirectoryIfNeeded(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		err = os.Mkdir(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating folder: %v", err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("file %s exists but is not a directory", dir)
	}
	return nil
}
