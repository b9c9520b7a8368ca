package order

// Leg is an order's position within a two-order ring.
type Leg int

const (
	FirstLeg Leg = iota
	SecondLeg
)

// slotAssignment fixes the account and token table slots for one leg.
type slotAssignment struct {
	accountS, accountB, accountF uint32
	tokenS, tokenB, tokenF       uint32
}

// slotsByLeg is a contract with the settlement circuit: the circuit expects
// exactly these slots for a two-order ring, so the table must not change
// independently of it.
var slotsByLeg = [2]slotAssignment{
	FirstLeg:  {accountS: 0, accountB: 1, accountF: 2, tokenS: 1, tokenB: 2, tokenF: 3},
	SecondLeg: {accountS: 4, accountB: 3, accountF: 5, tokenS: 2, tokenB: 1, tokenF: 3},
}

// LegForIndex maps a zero-based batch position to its ring leg.
func LegForIndex(index int) Leg {
	if index%2 == 0 {
		return FirstLeg
	}
	return SecondLeg
}
