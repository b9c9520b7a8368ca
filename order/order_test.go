package order_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/fullkomnun/protocols/order"
	"github.com/fullkomnun/protocols/testutils"
)

const now = 1_000_000

func TestSlotAssignmentFixture(t *testing.T) {
	n := testutils.NewNormalizer()
	raws := testutils.SampleRawOrders(1, 10)

	first, err := n.Normalize(raws[0], 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.AccountS != 0 || first.AccountB != 1 || first.AccountF != 2 {
		t.Errorf("first leg account slots: got {%d,%d,%d}, want {0,1,2}",
			first.AccountS, first.AccountB, first.AccountF)
	}
	if first.TokenIDS != 1 || first.TokenIDB != 2 || first.TokenIDF != 3 {
		t.Errorf("first leg token slots: got {%d,%d,%d}, want {1,2,3}",
			first.TokenIDS, first.TokenIDB, first.TokenIDF)
	}

	second, err := n.Normalize(raws[1], 1, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.AccountS != 4 || second.AccountB != 3 || second.AccountF != 5 {
		t.Errorf("second leg account slots: got {%d,%d,%d}, want {4,3,5}",
			second.AccountS, second.AccountB, second.AccountF)
	}
	if second.TokenIDS != 2 || second.TokenIDB != 1 || second.TokenIDF != 3 {
		t.Errorf("second leg token slots: got {%d,%d,%d}, want {2,1,3}",
			second.TokenIDS, second.TokenIDB, second.TokenIDF)
	}

	// slot assignment depends on position only, not on order content
	swapped, err := n.Normalize(raws[0], 1, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swapped.AccountS != 4 || swapped.AccountB != 3 || swapped.AccountF != 5 {
		t.Errorf("content changed slot assignment: got {%d,%d,%d}",
			swapped.AccountS, swapped.AccountB, swapped.AccountF)
	}
}

func TestValidityWindowAsymmetry(t *testing.T) {
	n := testutils.NewNormalizer()
	raws := testutils.SampleRawOrders(1, 10)
	raws = append(raws, testutils.SampleRawOrders(1, 12)...)

	for i, raw := range raws {
		o, err := n.Normalize(raw, i, now)
		if err != nil {
			t.Fatalf("order %d: unexpected error: %v", i, err)
		}
		if o.ValidSince != now-order.ValidSinceMargin {
			t.Errorf("order %d validSince: got %d, want %d",
				i, o.ValidSince, now-order.ValidSinceMargin)
		}
		if i%2 == 1 {
			if o.ValidUntil != now+order.ValidUntilMargin {
				t.Errorf("order %d validUntil: got %d, want %d",
					i, o.ValidUntil, now+order.ValidUntilMargin)
			}
		} else if o.ValidUntil != 0 {
			t.Errorf("order %d validUntil: got %d, want 0", i, o.ValidUntil)
		}
	}
}

func TestExplicitValidityWindowKept(t *testing.T) {
	n := testutils.NewNormalizer()
	raw := testutils.SampleRawOrders(1, 10)[0]
	raw.ValidSince = 500
	raw.ValidUntil = 600

	o, err := n.Normalize(raw, 1, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ValidSince != 500 || o.ValidUntil != 600 {
		t.Errorf("explicit window overwritten: got [%d, %d], want [500, 600]",
			o.ValidSince, o.ValidUntil)
	}
}

func TestOwnerResolution(t *testing.T) {
	n := testutils.NewNormalizer()
	raw := testutils.SampleRawOrders(1, 10)[0]

	tests := []struct {
		name  string
		owner string
		index int
		want  string
	}{
		{"empty uses position", "", 0, testutils.OwnerPool[0]},
		{"empty wraps around pool", "", 5, testutils.OwnerPool[1]},
		{"numeric indexes pool", "2", 0, testutils.OwnerPool[2]},
		{"address kept as is", "0x00112233445566778899aabbccddeeff00112233", 0,
			"0x00112233445566778899aabbccddeeff00112233"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := raw
			raw.Owner = tc.owner
			o, err := n.Normalize(raw, tc.index, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if o.Owner != tc.want {
				t.Errorf("got owner %q, want %q", o.Owner, tc.want)
			}
		})
	}

	raw.Owner = "7"
	if _, err := n.Normalize(raw, 0, now); !errors.Is(err, order.ErrInvalidOwnerIndex) {
		t.Errorf("got %v, want ErrInvalidOwnerIndex", err)
	}
}

func TestTokenResolution(t *testing.T) {
	n := testutils.NewNormalizer()
	raw := testutils.SampleRawOrders(1, 10)[0]

	o, err := n.Normalize(raw, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.TokenS != testutils.TokenX || o.TokenB != testutils.TokenY {
		t.Errorf("symbols not resolved: got %s / %s", o.TokenS, o.TokenB)
	}

	raw.TokenB = "0x00112233445566778899aabbccddeeff00112233"
	o, err = n.Normalize(raw, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.TokenB != raw.TokenB {
		t.Errorf("address not kept: got %s", o.TokenB)
	}

	raw.TokenB = "WETH"
	if _, err := n.Normalize(raw, 0, now); !errors.Is(err, order.ErrUnknownTokenSymbol) {
		t.Errorf("got %v, want ErrUnknownTokenSymbol", err)
	}
}

func TestFeeDefaults(t *testing.T) {
	n := testutils.NewNormalizer()
	raw := testutils.SampleRawOrders(1, 10)[0]
	raw.TokenF = ""
	raw.AmountF = nil

	o, err := n.Normalize(raw, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.TokenF != testutils.TokenZ {
		t.Errorf("fee token: got %s, want protocol fee token %s",
			o.TokenF, testutils.TokenZ)
	}
	if o.AmountF.Sign() != 0 {
		t.Errorf("fee amount: got %s, want 0", o.AmountF)
	}
}

func TestNormalizeCopiesAmounts(t *testing.T) {
	n := testutils.NewNormalizer()
	raw := testutils.SampleRawOrders(1, 10)[0]

	o, err := n.Normalize(raw, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw.AmountS.Add(raw.AmountS, big.NewInt(1))
	if o.AmountS.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("normalized amount aliases raw order: got %s", o.AmountS)
	}
}
